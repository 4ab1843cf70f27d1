package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound は対象の行が存在しない場合のエラーです
var ErrNotFound = errors.New("not found")

// NotFoundError は主キーで検索した行が存在しないことを表します
// HTTP層で404に変換できるように Status を持ちます
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such %s: %d", e.Resource, e.ID)
}

// Status はHTTPステータスコード相当の値を返します
func (e *NotFoundError) Status() int {
	return http.StatusNotFound
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
