package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized line with module/action/request_id.
// Keep message summarized; never log tokens or passwords.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}

// LogError is LogEvent for failures, tagged so they can be grepped apart.
func LogError(requestID, module, action string, err error) {
	if err == nil {
		return
	}
	log.Printf("[%s] level=error action=%s request_id=%s err=%v", strings.ToUpper(module), action, strings.TrimSpace(requestID), err)
}
