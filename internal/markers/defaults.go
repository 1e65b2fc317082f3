package markers

// Default returns the built-in Portuguese marker tables.
func Default() *Set {
	s, err := build(defaultFile())
	if err != nil {
		// The built-in tables are static; a failure here is a programming error.
		panic("markers: invalid default tables: " + err.Error())
	}
	return s
}

func defaultFile() File {
	return File{
		Introduction: []ElementSpec{
			{Name: ElemContexto, Triggers: []string{
				"atualmente", "nos dias de hoje", "na sociedade contemporânea",
				"no cenário atual", "no contexto", "diante", "perante",
				"em meio a", "frente a", "segundo",
			}},
			{Name: ElemTese, Triggers: []string{
				"portanto", "assim", "dessa forma", "logo", "evidencia-se",
				"torna-se", "é fundamental", "é necessário", "é preciso",
				"deve-se considerar", "é importante destacar",
			}},
			{Name: ElemArgumentos, Triggers: []string{
				"primeiro", "inicialmente", "primeiramente", "além disso",
				"ademais", "outrossim", "não obstante", "por um lado",
				"em primeiro lugar", "sobretudo",
			}},
		},
		Development: []ElementSpec{
			{Name: ElemArgumento, Triggers: []string{
				"com efeito", "de fato", "certamente", "evidentemente",
				"naturalmente", "notadamente", "sobretudo", "principalmente",
				"especialmente", "particularmente",
			}},
			{Name: ElemJustificativa, Triggers: []string{
				"uma vez que", "visto que", "já que", "pois", "porque",
				"posto que", "considerando que", "tendo em vista que",
				"em virtude de", "devido a",
			}},
			{Name: ElemRepertorio, Triggers: []string{
				"segundo", "conforme", "de acordo com", "como afirma",
				"como aponta", "como evidencia", "como mostra",
				"segundo dados", "pesquisas indicam", "estudos mostram",
			}},
			{Name: ElemConclusao, Triggers: []string{
				"portanto", "assim", "dessa forma", "logo", "por conseguinte",
				"consequentemente", "destarte", "sendo assim",
				"desse modo", "diante disso",
			}},
		},
		Conclusion: []ElementSpec{
			{Name: ElemAgente, Triggers: []string{
				"governo", "estado", "ministério", "secretaria", "município",
				"instituições", "organizações", "sociedade civil",
				"poder público", "autoridades",
			}},
			{Name: ElemAcao, Triggers: []string{
				"criar", "implementar", "desenvolver", "promover", "estabelecer",
				"formar", "construir", "realizar", "elaborar", "instituir",
				"fomentar", "incentivar",
			}},
			{Name: ElemModo, Triggers: []string{
				"por meio de", "através de", "mediante", "por intermédio de",
				"com base em", "utilizando", "a partir de", "por meio da",
				"com o auxílio de", "valendo-se de",
			}},
			{Name: ElemFinalidade, Triggers: []string{
				"a fim de", "para que", "com o objetivo de", "visando",
				"com a finalidade de", "de modo a", "no intuito de",
				"objetivando", "com o propósito de", "almejando",
			}},
		},
		// "e" is left out of aditivos: as a bare conjunction it swamps every count.
		Connectives: []GroupSpec{
			{Category: string(Aditivos), Phrases: []string{
				"além disso", "ademais", "também", "outrossim",
				"inclusive", "ainda", "não só", "mas também",
			}},
			{Category: string(Adversativos), Phrases: []string{
				"mas", "porém", "contudo", "entretanto", "no entanto",
				"todavia", "não obstante", "apesar de", "embora",
			}},
			{Category: string(Conclusivos), Phrases: []string{
				"portanto", "logo", "assim", "dessa forma", "por isso",
				"consequentemente", "por conseguinte", "então", "diante disso",
			}},
			{Category: string(Explicativos), Phrases: []string{
				"pois", "porque", "já que", "visto que", "uma vez que",
				"posto que", "tendo em vista que", "considerando que",
			}},
			{Category: string(Sequenciais), Phrases: []string{
				"primeiramente", "em seguida", "por fim", "depois",
				"anteriormente", "posteriormente", "finalmente",
			}},
			{Category: string(Comparativos), Phrases: []string{
				"assim como", "bem como", "tal como", "da mesma forma",
				"do mesmo modo", "igualmente", "semelhantemente",
			}},
			{Category: string(Enfaticos), Phrases: []string{
				"sobretudo", "principalmente", "de fato", "com efeito",
				"sem dúvida", "vale ressaltar", "é importante ressaltar",
			}},
		},
		Suggestions: map[string][]string{
			ElemContexto: {
				"Desenvolva melhor o contexto histórico ou social do tema",
				"Relacione o tema com a atualidade de forma mais específica",
				"Apresente dados ou informações que contextualizem o tema",
			},
			ElemTese: {
				"Apresente seu ponto de vista de forma mais clara e direta",
				"Defina melhor sua posição sobre o tema",
				"Explicite sua opinião sobre a problemática apresentada",
			},
			ElemArgumentos: {
				"Fortaleça seus argumentos com exemplos concretos",
				"Desenvolva melhor a fundamentação dos argumentos",
				"Apresente evidências que suportem seu ponto de vista",
			},
			ElemArgumento: {
				"Apresente evidências para sustentar este argumento",
				"Desenvolva melhor a linha de raciocínio",
				"Utilize dados ou exemplos para fortalecer seu argumento",
			},
			ElemJustificativa: {
				"Explique melhor o porquê de sua afirmação",
				"Apresente as razões que fundamentam seu argumento",
				"Desenvolva a relação causa-consequência de sua argumentação",
			},
			ElemRepertorio: {
				"Utilize conhecimentos de outras áreas para enriquecer o texto",
				"Cite exemplos históricos, literários ou científicos",
				"Faça referências a obras, autores ou eventos relevantes",
			},
			ElemConclusao: {
				"Relacione melhor a conclusão com os argumentos apresentados",
				"Reforce a solução proposta de forma mais clara",
				"Sintetize os principais pontos discutidos no texto",
			},
			ElemAgente: {
				"Especifique melhor quem deve executar as ações propostas",
				"Identifique os responsáveis pela implementação da solução",
				"Defina claramente os atores envolvidos na resolução",
			},
			ElemAcao: {
				"Detalhe melhor as ações necessárias",
				"Especifique as medidas práticas a serem tomadas",
				"Proponha soluções mais concretas e viáveis",
			},
			ElemModo: {
				"Explique melhor como as ações devem ser implementadas",
				"Detalhe os meios para alcançar a solução",
				"Especifique os métodos de execução das propostas",
			},
			ElemFinalidade: {
				"Esclareça melhor os objetivos das ações propostas",
				"Explique qual resultado se espera alcançar",
				"Detalhe as metas e benefícios esperados",
			},
		},
	}
}
