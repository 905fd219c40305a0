package router

// Strategy names the pipeline step that produced a reply
type Strategy string

const (
	StrategyStatusLookup     Strategy = "STATUS_LOOKUP"
	StrategyIdentifierPrompt Strategy = "IDENTIFIER_PROMPT"
	StrategyDocument         Strategy = "DOCUMENT"
	StrategyGenerative       Strategy = "GENERATIVE"
	StrategyKnowledgeBase    Strategy = "KNOWLEDGE_BASE"
	StrategyDefault          Strategy = "DEFAULT"
)

// Strategies lists every strategy in pipeline order
var Strategies = []Strategy{
	StrategyStatusLookup,
	StrategyIdentifierPrompt,
	StrategyDocument,
	StrategyGenerative,
	StrategyKnowledgeBase,
	StrategyDefault,
}

func (s Strategy) String() string {
	return string(s)
}
