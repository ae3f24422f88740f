package util

// RedactKey masks an API key for log output, keeping enough of the prefix and
// suffix to tell credentials apart. Short values are masked entirely.
func RedactKey(key string) string {
	if len(key) < 12 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
