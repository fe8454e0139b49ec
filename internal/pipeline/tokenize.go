package pipeline

// MaxTokens bounds the argument vector produced by Tokenize. Tokens past the
// limit are dropped.
const MaxTokens = 63

// Tokenize splits a command string into arguments. Spaces and tabs separate
// tokens. A token that starts with ' or " runs to the next matching quote
// (or the end of the string) and the quotes are removed. Quotes elsewhere are
// literal and no escape sequences are recognised.
func Tokenize(command string) []string {
	var args []string
	i, n := 0, len(command)
	for i < n && len(args) < MaxTokens {
		for i < n && isBlank(command[i]) {
			i++
		}
		if i == n {
			break
		}

		if q := command[i]; q == '\'' || q == '"' {
			i++
			start := i
			for i < n && command[i] != q {
				i++
			}
			args = append(args, command[start:i])
			if i < n {
				i++ // closing quote
			}
			continue
		}

		start := i
		for i < n && !isBlank(command[i]) {
			i++
		}
		args = append(args, command[start:i])
	}
	return args
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
