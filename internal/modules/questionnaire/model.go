// README: Questionnaire questions and per-user answers.
package questionnaire

// Question is a stored question document, relayed to clients as-is.
type Question map[string]any

// Answers maps a question key to the user's answer (a string or a list of strings).
type Answers map[string]any

type Response struct {
	Username  string  `bson:"username"`
	Responses Answers `bson:"responses"`
}

type Result struct {
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
	Assistance     string `json:"assistance,omitempty"`
}
