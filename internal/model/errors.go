package model

import "fmt"

// ValidationError はフィールドの値が許容範囲外のときに返されます
// 呼び出し元の入力誤りなのでリトライはしません
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
