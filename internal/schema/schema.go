// Package schema holds the request and response payloads of the demo endpoints.
package schema

// User is an example user.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Age      *int   `json:"age"`
}

// UserCreate is the body for creating an example user.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Age      *int   `json:"age" validate:"omitempty,gte=1,lte=150"`
}

// EvalImageRequest asks for the evaluation of the image at a URL.
type EvalImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// EvalImageDimension holds the per-dimension scores of an image.
type EvalImageDimension struct {
	Composition int `json:"composition"`
	Technique   int `json:"technique"`
	Lighting    int `json:"lighting"`
	Color       int `json:"color"`
	Narrative   int `json:"narrative"`
	Emotion     int `json:"emotion"`
}

// EvalImageScore is the evaluation of an image.
type EvalImageScore struct {
	OverallScore int                `json:"overallScore"`
	Dimensions   EvalImageDimension `json:"dimensions"`
}

// AnalyzeAnswersItem is a question with its correct and submitted answer.
type AnalyzeAnswersItem struct {
	Title   string `json:"title" validate:"required"`
	Ans     string `json:"ans" validate:"required"`
	UserAns string `json:"userAns" validate:"required"`
	Parse   string `json:"parse" validate:"required"`
}

// AnswerAnalysis is the analysis of submitted answers.
type AnswerAnalysis struct {
	Analysis string `json:"analysis"`
}
