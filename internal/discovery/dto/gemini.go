package dto

// GeminiAPIRequest is the request payload for the generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single content block of a Gemini request or response.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text part of a content block.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response payload of the generateContent endpoint.
type GeminiAPIResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// TokenSentimentResult is the structured sentiment verdict parsed out of the
// model response.
type TokenSentimentResult struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Arguments  []string `json:"arguments"`
}
