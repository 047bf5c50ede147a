package desensitize

import "io"

// Writer 在写入下游前对每条日志脱敏
type Writer struct {
	out  io.Writer
	hook *Hook
}

// NewWriter 包装 out；hook 为 nil 时原样透传
func NewWriter(out io.Writer, hook *Hook) *Writer {
	return &Writer{out: out, hook: hook}
}

// Write 返回 len(p)，脱敏改变长度不影响调用方
func (w *Writer) Write(p []byte) (int, error) {
	if w.hook == nil || w.hook.RuleCount() == 0 {
		return w.out.Write(p)
	}

	in := string(p)
	out := w.hook.Desensitize(in)
	if out == in {
		return w.out.Write(p)
	}
	if _, err := io.WriteString(w.out, out); err != nil {
		return 0, err
	}
	return len(p), nil
}
