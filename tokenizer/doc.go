// Package tokenizer provides token counting for conversation budgeting:
// a heuristic chars/4 estimator, an exact tiktoken adapter for
// OpenAI-family models, and a model-keyed registry with prefix matching.
package tokenizer
