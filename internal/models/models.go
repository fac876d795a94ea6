package models

// SelfUser is the owner's view of an account. It is only ever returned to
// the account itself (registration, login, self lookup) because it carries
// the stored password.
type SelfUser struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Friends  []string `json:"friends"`
}

// User is the public view of an account, with the credential redacted.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

// Public converts the owner view to the public one.
func (u *SelfUser) Public() *User {
	return &User{ID: u.ID, Name: u.Name, Friends: u.Friends}
}

// Post carries an opaque client-supplied date string. Like and dislike
// counters start at zero and are only changed by the reaction queries.
type Post struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Date     string `json:"date"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// Comment has the same shape as Post, scoped to a parent post.
type Comment struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	PostID   string `json:"post_id"`
	Body     string `json:"body"`
	Date     string `json:"date"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// Login is the request body for registration and login.
type Login struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
