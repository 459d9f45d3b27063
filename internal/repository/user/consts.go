package user

import "time"

const (
	// collection name
	userNode string = "users"

	// Fields' name and path
	EmailFieldPath       string = "email"
	UsernameFieldPath    string = "username"
	IsPremiumFieldPath   string = "isPremium"
	PreferencesFieldPath string = "preferences"

	// It must not exceed the write timeout of the database.firestore.notifyOnChanges
	channelWriteTimeout time.Duration = time.Second * 3
)
