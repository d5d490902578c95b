package planilha

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrDataHoraInvalida valor que não pôde ser convertido
var ErrDataHoraInvalida = errors.New("data/hora inválida")

// epocaSerial dia zero das datas seriais do Excel (compensa o falso 29/02/1900)
var epocaSerial = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const msPorDia = 24 * 60 * 60 * 1000

var (
	reDataHoraBR = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})\s+(\d{2}):(\d{2})(?::(\d{2}))?`)
	reDataBR     = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	reDataISO    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

var layoutsGenericos = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02/01/2006",
	"2/1/2006",
}

// DecodificarDataHora converte o valor da célula em instante UTC.
// O horário de parede da planilha é preservado: 14:30 na célula vira 14:30Z.
func DecodificarDataHora(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, ErrDataHoraInvalida
		}
		return x, nil
	case string:
		return decodificarTexto(strings.TrimSpace(x))
	case float64:
		return DeSerial(x)
	case float32:
		return DeSerial(float64(x))
	case int:
		return DeSerial(float64(x))
	case int64:
		return DeSerial(float64(x))
	default:
		return time.Time{}, ErrDataHoraInvalida
	}
}

func decodificarTexto(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrDataHoraInvalida
	}

	if m := reDataHoraBR.FindStringSubmatch(s); m != nil {
		dia, _ := strconv.Atoi(m[1])
		mes, _ := strconv.Atoi(m[2])
		ano, _ := strconv.Atoi(m[3])
		hora, _ := strconv.Atoi(m[4])
		minuto, _ := strconv.Atoi(m[5])
		segundo := 0
		if m[6] != "" {
			segundo, _ = strconv.Atoi(m[6])
		}
		return montarUTC(ano, mes, dia, hora, minuto, segundo)
	}

	for _, layout := range layoutsGenericos {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}

	return time.Time{}, ErrDataHoraInvalida
}

// montarUTC rejeita componentes fora de faixa em vez de normalizá-los (31/02 não vira 03/03)
func montarUTC(ano, mes, dia, hora, minuto, segundo int) (time.Time, error) {
	if mes < 1 || mes > 12 || hora > 23 || minuto > 59 || segundo > 59 {
		return time.Time{}, ErrDataHoraInvalida
	}
	t := time.Date(ano, time.Month(mes), dia, hora, minuto, segundo, 0, time.UTC)
	if t.Day() != dia || int(t.Month()) != mes {
		return time.Time{}, ErrDataHoraInvalida
	}
	return t, nil
}

// DeSerial converte número serial do Excel (dias desde 1899-12-30, fração = hora do dia)
func DeSerial(n float64) (time.Time, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > 3e6 {
		return time.Time{}, ErrDataHoraInvalida
	}
	dias := math.Floor(n)
	ms := math.Round((n - dias) * msPorDia)
	return epocaSerial.AddDate(0, 0, int(dias)).Add(time.Duration(ms) * time.Millisecond), nil
}

// ParaSerial inverso de DeSerial
func ParaSerial(t time.Time) float64 {
	return float64(t.UTC().UnixMilli()-epocaSerial.UnixMilli()) / msPorDia
}

// PareceData valor com formato de data reconhecível
func PareceData(v any) bool {
	switch x := v.(type) {
	case time.Time:
		return !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		return reDataBR.MatchString(s) || reDataISO.MatchString(s)
	default:
		return false
	}
}
