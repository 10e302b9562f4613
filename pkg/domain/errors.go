package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRemoteUnavailable は AI 生成が要求されたがジェネレーターが構成されていないことを示します。
var ErrRemoteUnavailable = errors.New("remote image generator is not configured")

// RemoteGenerationError はリモート画像生成の失敗です。フォールバックで回復されます。
type RemoteGenerationError struct {
	Provider string
	Err      error
}

func (e *RemoteGenerationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("remote generation failed: %v", e.Err)
	}
	return fmt.Sprintf("remote generation failed (%s): %v", e.Provider, e.Err)
}

func (e *RemoteGenerationError) Unwrap() error { return e.Err }

// TemplateResourceError はテンプレートのベース画像を読み込めなかったことを示します。
type TemplateResourceError struct {
	TemplateID string
	ImagePath  string
	Err        error
}

func (e *TemplateResourceError) Error() string {
	return fmt.Sprintf("template %q: cannot load base image %q: %v", e.TemplateID, e.ImagePath, e.Err)
}

func (e *TemplateResourceError) Unwrap() error { return e.Err }

// CompositionError は描画やエンコードの想定外の失敗です。通常の入力では発生しません。
// Zone が -1 のときは特定のゾーンに起因しない失敗です。
type CompositionError struct {
	TemplateID string
	Zone       int
	Err        error
}

func (e *CompositionError) Error() string {
	if e.Zone < 0 {
		return fmt.Sprintf("template %q: composition failed: %v", e.TemplateID, e.Err)
	}
	return fmt.Sprintf("template %q zone %d: composition failed: %v", e.TemplateID, e.Zone, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// AllMethodsFailedError はリモートとローカルの両方が失敗したことを示します。
// 利用者に「生成に失敗した」と見せるべき唯一のエラーです。
type AllMethodsFailedError struct {
	Remote error // AI を使わなかった場合は nil
	Local  error
}

func (e *AllMethodsFailedError) Error() string {
	var b strings.Builder
	b.WriteString("failed to generate meme using all available methods")
	if e.Remote != nil {
		fmt.Fprintf(&b, "; remote: %v", e.Remote)
	}
	if e.Local != nil {
		fmt.Fprintf(&b, "; local: %v", e.Local)
	}
	return b.String()
}

// Unwrap は両方の原因を返すので errors.As でどちらも辿れます。
func (e *AllMethodsFailedError) Unwrap() []error {
	var errs []error
	if e.Remote != nil {
		errs = append(errs, e.Remote)
	}
	if e.Local != nil {
		errs = append(errs, e.Local)
	}
	return errs
}
