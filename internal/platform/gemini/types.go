package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	Aspect       string
	FingerprintA string
	FingerprintB string
}

// scoreSchema represents the expected JSON structure of an oracle response
type scoreSchema struct {
	// Score is the compatibility rating in [0,100] for the requested aspect
	Score int `json:"score"`
}
