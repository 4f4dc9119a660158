// Package groupme wraps the GroupMe platform: the join-link parser and a
// thin HTTP client for the join, image-upload, and post-message endpoints.
// The client normalizes upstream outcomes into values; it never raises for
// ordinary HTTP failure.
package groupme

import "strings"

// joinMarker is the literal path segment that identifies a share link,
// e.g. https://groupme.com/join_group/12345678/SHARE_TOKEN.
const joinMarker = "join_group"

// ParseJoinLink extracts the (room id, share token) pair from a GroupMe join
// link. The marker segment must be followed by exactly the two values; a
// bare numeric id, a missing marker, or a short tail all report ok=false.
func ParseJoinLink(link string) (roomID, shareToken string, ok bool) {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	for i, p := range parts {
		if p != joinMarker {
			continue
		}
		if i+2 >= len(parts) {
			return "", "", false
		}
		roomID, shareToken = parts[i+1], parts[i+2]
		if roomID == "" || shareToken == "" {
			return "", "", false
		}
		return roomID, shareToken, true
	}
	return "", "", false
}
