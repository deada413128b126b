package res

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	IsOnline  bool   `json:"isOnline"`
	LastSeen  string `json:"lastSeen,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type BlockStatusResponse struct {
	IsBlocked bool `json:"isBlocked"`
}
