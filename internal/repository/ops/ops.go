package ops

// Firestore query operators
const (
	Equal = "=="
)
