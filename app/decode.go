package app

import "venturelens/adapters/llm"

// decodeModelJSON normalizes raw model output and unmarshals it.
func decodeModelJSON(raw string, out any) error {
	return llm.DecodeJSON(raw, out)
}
