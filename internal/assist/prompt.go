package assist

import (
	"bytes"
	"strings"
	"text/template"
)

const elementsSystemPrompt = `Você é um corretor experiente de redações do ENEM. Analise um único parágrafo e indique quais elementos estruturais ele contém.

Instruções:
- Use somente os nomes de elementos da lista fornecida.
- Um elemento está presente apenas se o parágrafo o realiza de forma reconhecível.
- Liste em "ausentes" os elementos da lista que faltam.
- Dê no máximo duas sugestões curtas e práticas.`

var elementsUserTemplate = template.Must(template.New("elements").Funcs(funcs).Parse(`Tipo de parágrafo: {{.Type}}
Elementos esperados: {{join .Vocabulary ", "}}

Parágrafo:
{{.Text}}`))

const connectivesSystemPrompt = `Você é um especialista em coesão textual. Liste os conectivos (operadores argumentativos) usados na redação.

Instruções:
- Copie cada conectivo exatamente como aparece no texto, uma entrada por ocorrência.
- Classifique cada um em uma das categorias permitidas.
- Não invente conectivos que não estejam no texto.`

var connectivesUserTemplate = template.Must(template.New("connectives").Funcs(funcs).Parse(`Categorias: {{join .Categories ", "}}

Redação:
{{.Text}}`))

const justifySystemPrompt = `Você é um avaliador oficial do ENEM. Atribua uma nota a uma competência da redação com base nos critérios oficiais e nos erros já identificados.

Instruções:
- A nota deve ser 0, 40, 80, 120, 160 ou 200.
- A justificativa deve ser objetiva, em português, com no máximo três frases.`

var justifyUserTemplate = template.Must(template.New("justify").Parse(`Competência: {{.Competency}}

Erros identificados ({{len .Errors}}):
{{range .Errors}}- "{{.Excerpt}}": {{.Explanation}}
{{else}}- nenhum
{{end}}
Redação:
{{.Essay}}`))

const errorsSystemPrompt = `Você é um avaliador oficial do ENEM. Aponte os erros da redação que afetam a competência indicada.

Instruções:
- Para cada erro, copie o trecho exato, explique o problema e sugira a correção.
- Na explicação, nomeie o tipo de erro (por exemplo: ortografia, concordância, pontuação, crase, sintaxe, registro).
- Não aponte escolhas de estilo como erros.`

var errorsUserTemplate = template.Must(template.New("errors").Parse(`Competência: {{.Competency}}

Redação:
{{.Essay}}`))

var funcs = template.FuncMap{"join": strings.Join}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
