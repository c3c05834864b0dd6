// Package pipeline runs module stages in a fixed order, feeding each stage's
// output buffer to the next stage's input.
//
// A Chain is built programmatically with Append or from a JSON description
// with LoadJSON, which resolves stage types through a Registry:
//
//	{"stages": [
//	  {"type": "butter", "tag": "smooth", "params": {"cutoff": 8}},
//	  {"type": "movingsum", "params": {"duration": 0.2, "average": true}}
//	]}
//
// Tagged stages expose their output buffers through Chain.Output.
package pipeline
