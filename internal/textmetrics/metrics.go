// Package textmetrics computes corpus-linguistics style metrics over an
// essay: counts, lexical diversity and density, part-of-speech statistics,
// syntactic complexity, referential cohesion and adjacent-sentence similarity.
package textmetrics

import "math"

// Metrics is the full metric set for one text. Ratios are rounded to two
// decimals.
type Metrics struct {
	WordCount             int     `json:"word_count"`
	SentenceCount         int     `json:"sentence_count"`
	ParagraphCount        int     `json:"paragraph_count"`
	UniqueWords           int     `json:"unique_words"`
	LexicalDiversity      float64 `json:"lexical_diversity"`
	LexicalDensity        float64 `json:"lexical_density"`
	WordsPerSentence      float64 `json:"words_per_sentence"`
	SentencesPerParagraph float64 `json:"sentences_per_paragraph"`
	AverageWordLength     float64 `json:"average_word_length"`

	Connectives int `json:"connectives"`

	Nouns         int `json:"nouns"`
	Verbs         int `json:"verbs"`
	Adjectives    int `json:"adjectives"`
	Adverbs       int `json:"adverbs"`
	ContentWords  int `json:"content_words"`
	FunctionWords int `json:"function_words"`
	PresentTense  int `json:"present_tense"`
	PastTense     int `json:"past_tense"`
	FutureTense   int `json:"future_tense"`

	NounPhrases         int     `json:"noun_phrases"`
	VerbPhrases         int     `json:"verb_phrases"`
	ComplexSentences    int     `json:"complex_sentences"`
	SyntacticComplexity float64 `json:"syntactic_complexity"`

	ReferenceCohesion  float64 `json:"reference_cohesion"`
	SentenceSimilarity float64 `json:"sentence_similarity"`

	// Degraded is set when the naive splitter produced the counts.
	Degraded bool `json:"degraded"`
	// Parser and Similarity name the collaborators that served the request.
	Parser     string `json:"parser"`
	Similarity string `json:"similarity"`
}

// Metric names used by Map.
const (
	KeyWordCount             = "Word Count"
	KeySentenceCount         = "Sentence Count"
	KeyParagraphCount        = "Paragraph Count"
	KeyUniqueWords           = "Unique Words"
	KeyLexicalDiversity      = "Lexical Diversity"
	KeyLexicalDensity        = "Lexical Density"
	KeyWordsPerSentence      = "Words per Sentence"
	KeySentencesPerParagraph = "Sentences per Paragraph"
	KeyAverageWordLength     = "Average Word Length"
	KeyConnectives           = "Connectives"
	KeyNouns                 = "Nouns"
	KeyVerbs                 = "Verbs"
	KeyAdjectives            = "Adjectives"
	KeyAdverbs               = "Adverbs"
	KeyContentWords          = "Content Words"
	KeyFunctionWords         = "Function Words"
	KeyPresentTense          = "Present Tense"
	KeyPastTense             = "Past Tense"
	KeyFutureTense           = "Future Tense"
	KeyNounPhrases           = "Noun Phrases"
	KeyVerbPhrases           = "Verb Phrases"
	KeyComplexSentences      = "Complex Sentences"
	KeySyntacticComplexity   = "Syntactic Complexity"
	KeyReferenceCohesion     = "Reference Cohesion"
	KeySentenceSimilarity    = "Sentence Similarity"
)

// Map returns the metrics as a flat name to value mapping. Every key is
// always present.
func (m Metrics) Map() map[string]float64 {
	return map[string]float64{
		KeyWordCount:             float64(m.WordCount),
		KeySentenceCount:         float64(m.SentenceCount),
		KeyParagraphCount:        float64(m.ParagraphCount),
		KeyUniqueWords:           float64(m.UniqueWords),
		KeyLexicalDiversity:      m.LexicalDiversity,
		KeyLexicalDensity:        m.LexicalDensity,
		KeyWordsPerSentence:      m.WordsPerSentence,
		KeySentencesPerParagraph: m.SentencesPerParagraph,
		KeyAverageWordLength:     m.AverageWordLength,
		KeyConnectives:           float64(m.Connectives),
		KeyNouns:                 float64(m.Nouns),
		KeyVerbs:                 float64(m.Verbs),
		KeyAdjectives:            float64(m.Adjectives),
		KeyAdverbs:               float64(m.Adverbs),
		KeyContentWords:          float64(m.ContentWords),
		KeyFunctionWords:         float64(m.FunctionWords),
		KeyPresentTense:          float64(m.PresentTense),
		KeyPastTense:             float64(m.PastTense),
		KeyFutureTense:           float64(m.FutureTense),
		KeyNounPhrases:           float64(m.NounPhrases),
		KeyVerbPhrases:           float64(m.VerbPhrases),
		KeyComplexSentences:      float64(m.ComplexSentences),
		KeySyntacticComplexity:   m.SyntacticComplexity,
		KeyReferenceCohesion:     m.ReferenceCohesion,
		KeySentenceSimilarity:    m.SentenceSimilarity,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ratio returns num/den rounded, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return round2(num / den)
}
