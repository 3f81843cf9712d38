package content

// Introductions open the first paragraph of a page. "{profession}" is replaced with the page subject.
var Introductions = []string{
	"Uma carta de apresentação bem elaborada é fundamental para",
	"Destacar-se no mercado de trabalho português requer uma carta de apresentação profissional para",
	"Para conseguir o emprego dos seus sonhos como",
	"O sucesso na procura de emprego em Portugal começa com uma carta de apresentação eficaz para",
	"Profissionais de {profession} que procuram oportunidades em Portugal precisam de uma carta de apresentação que",
}

// Closings end a page with a call to action.
var Closings = []string{
	"Crie hoje mesmo a sua carta de apresentação personalizada e destaque-se da concorrência.",
	"Não perca mais oportunidades - comece já a criar a sua carta de apresentação profissional.",
	"Invista no seu futuro profissional com uma carta de apresentação que realmente funciona.",
	"Transforme a sua procura de emprego com uma carta de apresentação que impressiona recrutadores.",
	"Dê o próximo passo na sua carreira com uma carta de apresentação que abre portas.",
}

// Benefits list what a good cover letter achieves.
var Benefits = []string{
	"Aumenta as suas hipóteses de ser chamado para entrevista",
	"Destaca as suas competências mais relevantes",
	"Demonstra o seu interesse genuíno na posição",
	"Personaliza a sua candidatura para cada empresa",
	"Mostra o seu conhecimento sobre o sector",
	"Evidencia a sua motivação e profissionalismo",
}

// Tips list writing advice.
var Tips = []string{
	"Personalize sempre a carta para cada candidatura",
	"Destaque as competências mais relevantes para a posição",
	"Use uma linguagem profissional mas acessível",
	"Mantenha um tom positivo e confiante",
	"Seja específico sobre as suas conquistas",
	"Revise cuidadosamente antes de enviar",
}

// Connectors join sentences.
var Connectors = []string{
	"além disso", "por outro lado", "desta forma", "assim sendo", "por conseguinte",
	"neste sentido", "de facto", "com efeito", "por sua vez", "em suma",
}
