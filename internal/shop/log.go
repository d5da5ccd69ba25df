package shop

const timestampLayout = "15:04:05"

func (s *Session) appendLog(message string, severity Severity) LogEntry {
	if severity == "" {
		severity = SeverityInfo
	}
	entry := LogEntry{
		Icon:      severity.Icon(),
		Severity:  severity,
		Timestamp: s.clock.Now().Local().Format(timestampLayout),
		Message:   message,
	}
	s.state.Log = append(s.state.Log, LogEntry{})
	copy(s.state.Log[1:], s.state.Log)
	s.state.Log[0] = entry
	return entry
}

// VisibleLog returns at most n of the newest entries, newest first.
func (s *Session) VisibleLog(n int) []LogEntry {
	if s.state == nil || n <= 0 {
		return []LogEntry{}
	}
	if n > len(s.state.Log) {
		n = len(s.state.Log)
	}
	out := make([]LogEntry, n)
	copy(out, s.state.Log[:n])
	return out
}
