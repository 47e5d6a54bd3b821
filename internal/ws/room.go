package ws

import "strings"

// ChatRoomID derives the stable room key for a property-scoped thread
// between two users. Both participants compute the same key regardless
// of who opened the thread.
func ChatRoomID(propertyID, userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return strings.Join([]string{propertyID, userA, userB}, "_")
}
