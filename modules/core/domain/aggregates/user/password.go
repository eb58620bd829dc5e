package user

// Strength is the qualitative score of a candidate password, rendered as
// a meter on the registration form.
type Strength struct {
	Score      int    `json:"score"`
	Message    string `json:"message"`
	Color      string `json:"color"`
	Percentage int    `json:"percentage"`
}

const (
	colorDanger  = "#dc3545"
	colorWarning = "#ffc107"
	colorSuccess = "#28a745"
)

// EvaluateStrength scores a password on a 0..5 scale: one point for
// reaching the minimum length, one per character class present
// (lowercase, uppercase, digit, other). Shorter passwords never score
// above 1 regardless of their character mix.
func EvaluateStrength(password string) Strength {
	if len(password) == 0 {
		return Strength{Score: 0, Message: "Inserisci una password", Color: colorDanger, Percentage: 0}
	}
	if len(password) < 8 {
		return Strength{
			Score:      1,
			Message:    "La password è troppo corta (minimo 8 caratteri)",
			Color:      colorDanger,
			Percentage: 20,
		}
	}

	score := 1
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	for _, present := range []bool{lower, upper, digit, special} {
		if present {
			score++
		}
	}

	var message, color string
	switch score {
	case 2:
		message, color = "Password debole", colorDanger
	case 3:
		message, color = "Password moderata", colorWarning
	case 4:
		message, color = "Password buona", colorSuccess
	default:
		message, color = "Password eccellente", colorSuccess
	}
	return Strength{Score: score, Message: message, Color: color, Percentage: score * 100 / 5}
}
