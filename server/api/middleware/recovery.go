package middleware

import (
	"fmt"

	"github.com/openrport/sysdash/share/logger"
)

// RecoveryLogger lets gorilla/handlers report recovered panics to the logger.
type RecoveryLogger struct {
	*logger.Logger
}

func NewRecoveryLogger(l *logger.Logger) *RecoveryLogger {
	return &RecoveryLogger{
		Logger: l,
	}
}

func (l *RecoveryLogger) Println(v ...interface{}) {
	l.Errorf("%s", fmt.Sprintln(v...))
}
