package domain

import "strings"

// Soul - каста души. Помечает заклинания и существ; определяет,
// в какой слот книги заклинаний попадает спелл.
type Soul uint8

const (
	SoulEmpty Soul = iota
	SoulSaintly
	SoulOrdered
	SoulArtistic
	SoulUnhinged
	SoulFeral
	SoulVile
)

// Маппинг для конвертации контента/JSON -> Domain
var soulStringToCmd = map[string]Soul{
	"EMPTY":    SoulEmpty,
	"SAINTLY":  SoulSaintly,
	"ORDERED":  SoulOrdered,
	"ARTISTIC": SoulArtistic,
	"UNHINGED": SoulUnhinged,
	"FERAL":    SoulFeral,
	"VILE":     SoulVile,
}

// Маппинг для логов Domain -> String
var soulCmdToString = map[Soul]string{
	SoulEmpty:    "EMPTY",
	SoulSaintly:  "SAINTLY",
	SoulOrdered:  "ORDERED",
	SoulArtistic: "ARTISTIC",
	SoulUnhinged: "UNHINGED",
	SoulFeral:    "FERAL",
	SoulVile:     "VILE",
}

// Буквы каст для ASCII-паттернов рецептов крафта.
var soulLetters = map[byte]Soul{
	'S': SoulSaintly,
	'O': SoulOrdered,
	'A': SoulArtistic,
	'U': SoulUnhinged,
	'F': SoulFeral,
	'V': SoulVile,
}

// ParseSoul конвертирует строку в Soul.
func ParseSoul(s string) (Soul, bool) {
	val, ok := soulStringToCmd[strings.ToUpper(s)]
	return val, ok
}

// SoulFromLetter конвертирует букву паттерна рецепта в Soul.
func SoulFromLetter(ch byte) (Soul, bool) {
	val, ok := soulLetters[ch]
	return val, ok
}

// String реализует интерфейс Stringer (для fmt.Printf).
func (s Soul) String() string {
	if val, ok := soulCmdToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}
