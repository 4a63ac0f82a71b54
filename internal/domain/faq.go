package domain

// QAPair is a single validated question/answer pair extracted from a
// generation response. Both fields are already sanitized and non-empty.
type QAPair struct {
	Question string `json:"pergunta"`
	Answer   string `json:"resposta"`
}

// CreatedFAQ summarizes one FAQ item persisted for a source post.
type CreatedFAQ struct {
	QuestionID int64  `json:"question_id"`
	Title      string `json:"title"`
}
