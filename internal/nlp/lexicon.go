package nlp

import "strings"

// Closed-class Portuguese words. Open-class words fall through to the suffix
// heuristics in guessOpenClass.
var closedClass = map[string]string{}

// Demonstratives get PronType=Dem so reference cohesion can count them.
var demonstratives = map[string]bool{}

func init() {
	add := func(pos string, words string) {
		for _, w := range strings.Fields(words) {
			closedClass[w] = pos
		}
	}

	add(PosDet, `o a os as um uma uns umas
		meu minha meus minhas teu tua teus tuas seu sua seus suas
		nosso nossa nossos nossas vosso vossa
		todo toda todos todas algum alguma alguns algumas
		nenhum nenhuma cada qualquer quaisquer outro outra outros outras
		muitos muitas poucos poucas vários várias tal tais certo certa
		este esta estes estas esse essa esses essas aquele aquela aqueles aquelas`)

	add(PosAdp, `de em para por com sem sob sobre entre até desde contra perante
		ante após durante mediante ao aos à às do da dos das no na nos nas
		pelo pela pelos pelas num numa nuns numas dum duma deste desta destes
		destas desse dessa desses dessas daquele daquela neste nesta nesse
		nessa naquele naquela àquele àquela`)

	add(PosPron, `eu tu ele ela nós vós eles elas você vocês me te se lhe lhes
		mim ti si comigo contigo consigo vos
		isso isto aquilo quem qual quais cujo cuja cujos cujas
		algo alguém ninguém nada tudo onde`)

	add(PosCConj, `e ou mas nem porém contudo todavia entretanto`)

	add(PosSConj, `que porque pois embora se quando enquanto caso conforme
		porquanto conquanto`)

	add(PosAdv, `não sim muito mais menos já ainda também sempre nunca jamais
		aqui ali lá cá hoje ontem amanhã agora então logo assim bem mal
		tão quase apenas só somente talvez portanto ademais outrossim
		inclusive sobretudo depois antes`)

	add(PosAux, `é são foi foram era eram será serão seja sejam ser sendo sido
		está estão estava estavam estar estando esteve estiveram
		tem têm tinha tinham ter tendo há havia haver houve
		deve devem deveria deveriam pode podem poderia poderiam`)

	for _, w := range strings.Fields(`este esta estes estas esse essa esses essas
		aquele aquela aqueles aquelas isso isto aquilo tal tais`) {
		demonstratives[w] = true
	}
}

type suffixRule struct {
	suffix string
	pos    string
	tense  string
}

// Ordered longest-first within each group so "-mente" wins over "-ente".
var suffixRules = []suffixRule{
	{"mente", PosAdv, ""},

	{"ando", PosVerb, ""},
	{"endo", PosVerb, ""},
	{"indo", PosVerb, ""},
	{"aram", PosVerb, "Past"},
	{"eram", PosVerb, "Past"},
	{"iram", PosVerb, "Past"},
	{"avam", PosVerb, "Past"},
	{"ava", PosVerb, "Past"},
	{"rão", PosVerb, "Fut"},
	{"rá", PosVerb, "Fut"},
	{"ou", PosVerb, "Past"},

	{"osos", PosAdj, ""},
	{"osas", PosAdj, ""},
	{"oso", PosAdj, ""},
	{"osa", PosAdj, ""},
	{"ivos", PosAdj, ""},
	{"ivas", PosAdj, ""},
	{"ivo", PosAdj, ""},
	{"iva", PosAdj, ""},
	{"áveis", PosAdj, ""},
	{"íveis", PosAdj, ""},
	{"ável", PosAdj, ""},
	{"ível", PosAdj, ""},
	{"icos", PosAdj, ""},
	{"icas", PosAdj, ""},
	{"ico", PosAdj, ""},
	{"ica", PosAdj, ""},
	{"ais", PosAdj, ""},
	{"al", PosAdj, ""},

	{"ar", PosVerb, ""},
	{"er", PosVerb, ""},
	{"ir", PosVerb, ""},
}

// guessOpenClass tags a lower-cased open-class word.
func guessOpenClass(lower string) (pos, tense string) {
	if isNumber(lower) {
		return PosNum, ""
	}
	// Short words rarely carry a productive suffix.
	if len([]rune(lower)) <= 3 {
		return PosNoun, ""
	}
	for _, r := range suffixRules {
		if strings.HasSuffix(lower, r.suffix) {
			return r.pos, r.tense
		}
	}
	return PosNoun, ""
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '%' {
			return false
		}
	}
	return true
}
