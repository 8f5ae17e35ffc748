package workflow

import "regexp"

// mentionPattern matches the markup the comment editor emits for a
// mention: @[Display Name](userID). Only the user ID is of interest.
var mentionPattern = regexp.MustCompile(`@\[([^\]]+)\]\(([^)]+)\)`)

// ExtractMentions returns the user IDs of every mention in body, in
// order of appearance. Duplicates are preserved; malformed fragments
// such as a bare "@name" or "@[name]" without a parenthesized ID are
// ignored.
func ExtractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[2])
	}
	return ids
}
