package registry

import "github.com/deskfolio/deskos/internal/shared/types"

// Builtin returns the stock catalog in desktop order
func Builtin() []types.AppMetadata {
	return []types.AppMetadata{
		{
			ID:             "about",
			Name:           "About Me",
			Icon:           "👤",
			Component:      "AboutMeApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 800, Height: 600},
			SearchKeywords: []string{"about", "bio", "introduction", "education", "experience", "career"},
			Description:    "Learn more about my background, education, and experience",
		},
		{
			ID:             "projects",
			Name:           "Projects",
			Icon:           "💼",
			Component:      "ProjectsApp",
			Category:       types.CategoryWork,
			DefaultSize:    types.Size{Width: 900, Height: 650},
			SearchKeywords: []string{"projects", "portfolio", "work", "code", "github"},
			Description:    "View my projects and development work",
		},
		{
			ID:             "skills",
			Name:           "Skills",
			Icon:           "⚡",
			Component:      "SkillsApp",
			Category:       types.CategoryWork,
			DefaultSize:    types.Size{Width: 700, Height: 500},
			SearchKeywords: []string{"skills", "technologies", "tools", "languages", "frameworks"},
			Description:    "Explore my technical skills and expertise",
		},
		{
			ID:             "contact",
			Name:           "Contact",
			Icon:           "📧",
			Component:      "ContactApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 600, Height: 550},
			SearchKeywords: []string{"contact", "email", "message", "reach", "connect"},
			Description:    "Get in touch with me",
		},
		{
			ID:             "resume",
			Name:           "Resume",
			Icon:           "📄",
			Component:      "ResumeApp",
			Category:       types.CategoryWork,
			DefaultSize:    types.Size{Width: 800, Height: 700},
			SearchKeywords: []string{"resume", "cv", "curriculum", "vitae", "download"},
			Description:    "View and download my resume",
		},
		{
			ID:             "gallery",
			Name:           "Gallery",
			Icon:           "🖼️",
			Component:      "GalleryApp",
			Category:       types.CategoryWork,
			DefaultSize:    types.Size{Width: 850, Height: 600},
			SearchKeywords: []string{"gallery", "works", "images", "showcase", "portfolio"},
			Description:    "Browse through my work gallery",
		},
		{
			ID:             "settings",
			Name:           "Settings",
			Icon:           "⚙️",
			Component:      "SettingsApp",
			Category:       types.CategorySystem,
			DefaultSize:    types.Size{Width: 600, Height: 500},
			SearchKeywords: []string{"settings", "config", "theme", "color", "preferences"},
			Description:    "Customize your OS experience",
		},
		{
			ID:             "clock",
			Name:           "Clock",
			Icon:           "⏰",
			Component:      "ClockApp",
			Category:       types.CategorySystem,
			DefaultSize:    types.Size{Width: 400, Height: 500},
			SearchKeywords: []string{"clock", "time", "date", "timer", "stopwatch"},
			Description:    "Check the time and date",
		},
		{
			ID:             "calendar",
			Name:           "Calendar",
			Icon:           "📅",
			Component:      "CalendarApp",
			Category:       types.CategorySystem,
			DefaultSize:    types.Size{Width: 400, Height: 450},
			SearchKeywords: []string{"calendar", "date", "schedule", "month", "year"},
			Description:    "View the calendar",
		},
		{
			ID:             "calculator",
			Name:           "Calculator",
			Icon:           "🧮",
			Component:      "CalculatorApp",
			Category:       types.CategorySystem,
			DefaultSize:    types.Size{Width: 320, Height: 480},
			SearchKeywords: []string{"calculator", "math", "calculate", "numbers"},
			Description:    "Perform basic calculations",
		},
		{
			ID:             "tictactoe",
			Name:           "Tic Tac Toe",
			Icon:           "⭕",
			Component:      "TicTacToeApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 400, Height: 500},
			SearchKeywords: []string{"game", "play", "tic tac toe", "bot"},
			Description:    "Play Tic Tac Toe against a bot",
		},
		{
			ID:             "rps",
			Name:           "Rock Paper Scissors",
			Icon:           "✂️",
			Component:      "RPSApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 500, Height: 600},
			SearchKeywords: []string{"game", "play", "rock paper scissors", "rps", "bot"},
			Description:    "Play Rock Paper Scissors against a bot",
		},
		{
			ID:             "notes",
			Name:           "Notes",
			Icon:           "📝",
			Component:      "NotesApp",
			Category:       types.CategorySystem,
			DefaultSize:    types.Size{Width: 500, Height: 500},
			SearchKeywords: []string{"notes", "text", "write", "memo", "jot"},
			Description:    "Jot down quick notes",
		},
		{
			ID:             "snake",
			Name:           "Snake",
			Icon:           "🐍",
			Component:      "SnakeApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 420, Height: 520},
			SearchKeywords: []string{"game", "play", "snake", "arcade"},
			Description:    "Play the classic Snake game",
		},
		{
			ID:             "tetris",
			Name:           "Tetris",
			Icon:           "🧱",
			Component:      "TetrisApp",
			Category:       types.CategoryPersonal,
			DefaultSize:    types.Size{Width: 420, Height: 620},
			SearchKeywords: []string{"game", "play", "tetris", "blocks", "arcade"},
			Description:    "Stack falling blocks in Tetris",
		},
	}
}
