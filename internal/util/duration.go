package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseDuration разбирает строку длительности вида "<число><единица>",
// где единица измерения одна из s, m, h, d (секунды, минуты, часы, дни).
// Строка из одних цифр трактуется как секунды.
// Неизвестная единица — ошибка конфигурации, а не молчаливый fallback.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("пустая строка длительности")
	}

	i := 0
	for i < len(value) && unicode.IsDigit(rune(value[i])) {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("длительность %q не начинается с числа", value)
	}

	number, err := strconv.ParseInt(value[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное число в длительности %q: %w", value, err)
	}

	unit := value[i:]
	switch unit {
	case "", "s":
		return time.Duration(number) * time.Second, nil
	case "m":
		return time.Duration(number) * time.Minute, nil
	case "h":
		return time.Duration(number) * time.Hour, nil
	case "d":
		return time.Duration(number) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("неизвестная единица измерения %q в длительности %q", unit, value)
	}
}
