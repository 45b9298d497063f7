package types

// ProjectDetail is one block of a project's long-form description
type ProjectDetail struct {
	Type    string `json:"type" yaml:"type"` // "text", "image", "code"
	Content string `json:"content" yaml:"content"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Project is a portfolio project
type Project struct {
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Image       string          `json:"image,omitempty" yaml:"image,omitempty"`
	Link        string          `json:"link,omitempty" yaml:"link,omitempty"`
	GitHub      string          `json:"github,omitempty" yaml:"github,omitempty"`
	Details     []ProjectDetail `json:"details,omitempty" yaml:"details,omitempty"`
}

// Skill is a technical skill badge
type Skill struct {
	Icon    string `json:"icon" yaml:"icon"`
	Label   string `json:"label" yaml:"label"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
	IsImage bool   `json:"isImage,omitempty" yaml:"isImage,omitempty"`
}

// Education is an entry of the education history
type Education struct {
	Title       string `json:"title" yaml:"title"`
	Institution string `json:"institution" yaml:"institution"`
	Duration    string `json:"duration" yaml:"duration"`
	Grade       string `json:"grade,omitempty" yaml:"grade,omitempty"`
	Details     string `json:"details,omitempty" yaml:"details,omitempty"`
}

// BlogPost is a blog listing entry
type BlogPost struct {
	Title       string `json:"title" yaml:"title"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
}

// Experience is an entry of the work history
type Experience struct {
	Title            string   `json:"title" yaml:"title"`
	Company          string   `json:"company" yaml:"company"`
	Date             string   `json:"date" yaml:"date"`
	Role             string   `json:"role,omitempty" yaml:"role,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`
	Website          string   `json:"website,omitempty" yaml:"website,omitempty"`
}
