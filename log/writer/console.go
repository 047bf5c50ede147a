package writer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Console 返回人类可读的 writer；默认写 stderr，stdout 留给命令输出
func Console(out ...io.Writer) zerolog.ConsoleWriter {
	w := io.Writer(os.Stderr)
	if len(out) > 0 && out[0] != nil {
		w = out[0]
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		FormatLevel: func(i any) string {
			return fmt.Sprintf("%-5s", strings.ToUpper(fmt.Sprint(i)))
		},
	}
}
