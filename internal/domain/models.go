package domain

import "time"

// Group es un grupo de amigos identificado por slug publico y protegido por PIN.
type Group struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	PinHash   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Member es una persona dentro de un grupo.
type Member struct {
	ID                string    `json:"id"`
	GroupID           string    `json:"group_id"`
	Name              string    `json:"name"`
	CompletedChapters int       `json:"completed_chapters"`
	CreatedAt         time.Time `json:"created_at"`
}

// Profile guarda el estado completo del cuestionario de un miembro.
type Profile struct {
	MemberID  string    `json:"member_id"`
	Answers   AnswerMap `json:"answers"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizQuestion es una pregunta de quiz autorada: la opcion correcta del
// miembro objetivo mas hasta tres distractores. El invariante es que los
// distractores nunca repiten la opcion correcta ni se repiten entre si.
type QuizQuestion struct {
	ID             string    `json:"id"`
	GroupID        string    `json:"group_id"`
	TargetMemberID string    `json:"target_member_id"`
	QuestionID     string    `json:"question_id"`
	Prompt         string    `json:"prompt"`
	CorrectOption  string    `json:"correct_option"`
	Distractors    []string  `json:"distractors"`
	CreatedAt      time.Time `json:"created_at"`
}
