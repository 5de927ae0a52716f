package catalog

func modules(titles ...string) []Module {
	out := make([]Module, len(titles))
	for i, t := range titles {
		out[i] = Module{ID: i + 1, Titulo: t}
	}
	return out
}

var defaultCourses = []Course{
	{
		ID:           "1",
		Slug:         "inteligencia-emocional-lideranca",
		Titulo:       "Inteligência Emocional Aplicada à Liderança",
		CargaHoraria: 8,
		Categoria:    "Liderança",
		Modulos: modules(
			"Fundamentos da inteligência emocional",
			"Autoconsciência e autorregulação",
			"Empatia e habilidades sociais",
			"Liderança emocionalmente inteligente",
		),
	},
	{
		ID:           "2",
		Slug:         "gestao-estresse-qualidade-vida",
		Titulo:       "Gestão do Estresse e Qualidade de Vida no Trabalho",
		CargaHoraria: 6,
		Categoria:    "Saúde Mental",
		Modulos: modules(
			"Entendendo o estresse ocupacional",
			"Estratégias de enfrentamento",
			"Hábitos de qualidade de vida",
		),
	},
	{
		ID:           "3",
		Slug:         "comunicacao-nao-violenta",
		Titulo:       "Comunicação Não Violenta",
		CargaHoraria: 6,
		Categoria:    "Comunicação",
		Modulos: modules(
			"Princípios da CNV",
			"Observação sem julgamento",
			"Sentimentos e necessidades",
			"Pedidos claros e escuta empática",
		),
	},
	{
		ID:           "4",
		Slug:         "prevencao-assedio-moral-sexual",
		Titulo:       "Prevenção ao Assédio Moral e Sexual no Trabalho",
		CargaHoraria: 4,
		Categoria:    "Compliance",
		Modulos: modules(
			"Conceitos e marcos legais",
			"Identificação de condutas abusivas",
			"Canais de denúncia e acolhimento",
		),
	},
	{
		ID:           "5",
		Slug:         "riscos-psicossociais-nr01",
		Titulo:       "Gestão de Riscos Psicossociais e a NR-01",
		CargaHoraria: 8,
		Categoria:    "Segurança do Trabalho",
		Modulos: modules(
			"O que são riscos psicossociais",
			"A NR-01 e o GRO",
			"Avaliação e inventário de riscos",
			"Plano de ação e monitoramento",
			"Cultura de prevenção",
		),
	},
	{
		ID:           "6",
		Slug:         "lideranca-humanizada",
		Titulo:       "Liderança Humanizada",
		CargaHoraria: 6,
		Categoria:    "Liderança",
		Modulos: modules(
			"O papel do líder humanizado",
			"Segurança psicológica",
			"Feedback e desenvolvimento",
		),
	},
}

// Default is the built-in catalog shipped with the service.
func Default() *Catalog {
	c, err := New(defaultCourses)
	if err != nil {
		panic("catalog: invalid built-in catalog: " + err.Error())
	}
	return c
}
