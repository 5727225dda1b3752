package model

// Question is a four-option multiple-choice question exclusively owned by
// its exam; questions are never shared between exams.
type Question struct {
	ID            int64  `json:"id"`
	ExamID        int64  `json:"exam_id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Marks         int    `json:"marks"`
}

// QuestionPayload is the request shape for adding a question to an exam.
type QuestionPayload struct {
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required,oneof=A B C D"`
	Marks         int    `json:"marks" binding:"required,min=1"`
}
