package structure

const (
	excellentThreshold = 0.8
	adequateThreshold  = 0.5
)

var scoreFeedback = map[ParagraphType][3]string{
	Introduction: {
		"Excelente introdução com contextualização e tese claras!",
		"Introdução adequada, mas pode melhorar a contextualização.",
		"Introdução precisa de mais elementos básicos.",
	},
	Development1: {
		"Primeiro argumento muito bem desenvolvido!",
		"Primeiro argumento adequado, pode ser fortalecido.",
		"Primeiro argumento precisa ser melhor desenvolvido.",
	},
	Development2: {
		"Segundo argumento muito bem estruturado!",
		"Segundo argumento adequado, pode ser aprofundado.",
		"Segundo argumento precisa de mais fundamentação.",
	},
	Conclusion: {
		"Conclusão muito bem elaborada com proposta clara!",
		"Conclusão adequada, pode detalhar melhor as propostas.",
		"Conclusão precisa de propostas mais concretas.",
	},
}

var genericFeedback = [3]string{
	"Parágrafo muito bem estruturado!",
	"Parágrafo adequado, mas pode melhorar.",
	"Parágrafo precisa de mais desenvolvimento.",
}

var baseTips = map[ParagraphType][]string{
	Introduction: {
		"Apresente o tema de forma gradual, partindo do geral para o específico",
		"Inclua uma tese clara e bem definida ao final",
		"Use dados ou fatos relevantes para contextualizar o tema",
	},
	Development1: {
		"Desenvolva um argumento principal forte logo no início",
		"Use exemplos concretos para sustentar seu ponto de vista",
		"Mantenha o foco na tese apresentada na introdução",
	},
	Development2: {
		"Apresente um novo aspecto do tema, complementar ao primeiro desenvolvimento",
		"Estabeleça conexões claras com os argumentos anteriores",
		"Utilize repertório sociocultural relevante",
	},
	Conclusion: {
		"Retome os principais pontos discutidos de forma sintética",
		"Proponha soluções viáveis e bem estruturadas",
		"Especifique agentes, ações e meios para implementação",
	},
}

const (
	weakTip     = "Reforce a estrutura básica do parágrafo"
	adequateTip = "Adicione mais elementos de conexão entre as ideias"
)

func tier(score float64) int {
	switch {
	case score >= excellentThreshold:
		return 0
	case score >= adequateThreshold:
		return 1
	default:
		return 2
	}
}

// ScoreFeedback returns a one-line assessment of an element score.
func ScoreFeedback(score float64, t ParagraphType) string {
	lines, ok := scoreFeedback[t]
	if !ok {
		lines = genericFeedback
	}
	return lines[tier(score)]
}

// Tips returns writing tips for a paragraph type, plus one score-driven tip
// when the score is below excellent.
func Tips(t ParagraphType, score float64) []string {
	tips := append([]string{}, baseTips[t]...)
	switch tier(score) {
	case 1:
		tips = append(tips, adequateTip)
	case 2:
		tips = append(tips, weakTip)
	}
	return tips
}
