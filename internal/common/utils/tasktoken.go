package utils

import (
	"encoding/json"
	"fmt"
)

// ParseTaskToken はStep Functionsから渡されたタスクトークン(JSON)をTに変換します
func ParseTaskToken[T any](taskToken string) (T, error) {
	var input T
	if err := json.Unmarshal([]byte(taskToken), &input); err != nil {
		return input, fmt.Errorf("failed to parse task token: %w", err)
	}
	return input, nil
}
