package expr

import (
	"fmt"
	"strings"
	"time"
)

// funcID enumerates the closed function whitelist. Dispatch is an exhaustive
// switch over this enum, so there is no path from template text to arbitrary
// code: a name either maps to one of these cases or the span fails.
type funcID int

const (
	fnMayus funcID = iota
	fnMinus
	fnRecortar
	fnConcat
	fnReemplazar
	fnLargo
	fnHoy
	fnAhora
	fnSumarDias
	fnSumarMeses
	fnFormatoFecha
	fnContador
	fnLote
	fnRedondear
	fnFormatoNum
	fnSi
	fnVacio
	fnPorDefecto
)

var funcNames = map[string]funcID{
	"MAYUS":         fnMayus,
	"MINUS":         fnMinus,
	"RECORTAR":      fnRecortar,
	"CONCAT":        fnConcat,
	"REEMPLAZAR":    fnReemplazar,
	"LARGO":         fnLargo,
	"HOY":           fnHoy,
	"AHORA":         fnAhora,
	"SUMAR_DIAS":    fnSumarDias,
	"SUMAR_MESES":   fnSumarMeses,
	"FORMATO_FECHA": fnFormatoFecha,
	"CONTADOR":      fnContador,
	"LOTE":          fnLote,
	"REDONDEAR":     fnRedondear,
	"FORMATO_NUM":   fnFormatoNum,
	"SI":            fnSi,
	"VACIO":         fnVacio,
	"POR_DEFECTO":   fnPorDefecto,
}

// Default date format and the default LOTE pattern when no format argument is
// given.
const (
	defaultDateFormat     = "DD/MM/AAAA"
	defaultDateTimeFormat = "DD/MM/AAAA hh:mm:ss"
	defaultLoteFormat     = "AAAAMMDD-##"
)

func (ev *evaluator) evalCall(c *Call) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(c.Name))
	id, ok := funcNames[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownFunc, name)
	}
	args := c.Args

	switch id {
	case fnMayus:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		return strings.ToUpper(v), nil

	case fnMinus:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		return strings.ToLower(v), nil

	case fnRecortar:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		n, err := ev.evalArgFloat(args, 1, 0)
		if err != nil {
			return "", err
		}
		runes := []rune(v)
		if limit := int(n); limit >= 0 && limit < len(runes) {
			return string(runes[:limit]), nil
		}
		return v, nil

	case fnConcat:
		var sb strings.Builder
		for i := range args {
			v, err := ev.evalArg(args, i, "")
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
		}
		return sb.String(), nil

	case fnReemplazar:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		search, err := ev.evalArg(args, 1, "")
		if err != nil {
			return "", err
		}
		repl, err := ev.evalArg(args, 2, "")
		if err != nil {
			return "", err
		}
		if search == "" {
			return v, nil
		}
		return strings.ReplaceAll(v, search, repl), nil

	case fnLargo:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", len([]rune(v))), nil

	case fnHoy:
		format, err := ev.evalArg(args, 0, defaultDateFormat)
		if err != nil {
			return "", err
		}
		return formatDate(ev.ctx.Now, format), nil

	case fnAhora:
		format, err := ev.evalArg(args, 0, defaultDateTimeFormat)
		if err != nil {
			return "", err
		}
		return formatDate(ev.ctx.Now, format), nil

	case fnSumarDias:
		return ev.addToDate(args, 1)

	case fnSumarMeses:
		// A month is approximated as 30 days. Downstream batch codes depend
		// on this exact output, so it stays as-is instead of calendar math.
		return ev.addToDate(args, 30)

	case fnFormatoFecha:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		format, err := ev.evalArg(args, 1, defaultDateFormat)
		if err != nil {
			return "", err
		}
		return formatDate(ev.parseDate(v), format), nil

	case fnContador:
		start, err := ev.evalArgFloat(args, 0, 0)
		if err != nil {
			return "", err
		}
		step, err := ev.evalArgFloat(args, 1, 1)
		if err != nil {
			return "", err
		}
		pad, err := ev.evalArgFloat(args, 2, 0)
		if err != nil {
			return "", err
		}
		n := int(start) + ev.ctx.RowIndex*int(step)
		if width := int(pad); width > 0 {
			return fmt.Sprintf("%0*d", width, n), nil
		}
		return fmt.Sprintf("%d", n), nil

	case fnLote:
		format, err := ev.evalArg(args, 0, defaultLoteFormat)
		if err != nil {
			return "", err
		}
		if format == "" {
			format = defaultLoteFormat
		}
		return expandLote(format, ev.ctx.Now, ev.ctx.RowIndex), nil

	case fnRedondear:
		v, err := ev.evalArgFloat(args, 0, 0)
		if err != nil {
			return "", err
		}
		dec, err := ev.evalArgFloat(args, 1, 0)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.*f", clampDecimals(int(dec)), v), nil

	case fnFormatoNum:
		v, err := ev.evalArgFloat(args, 0, 0)
		if err != nil {
			return "", err
		}
		dec, err := ev.evalArgFloat(args, 1, 0)
		if err != nil {
			return "", err
		}
		sep, err := ev.evalArg(args, 2, "")
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%.*f", clampDecimals(int(dec)), v)
		if sep == "," {
			out = strings.Replace(out, ".", ",", 1)
		}
		return out, nil

	case fnSi:
		if len(args) == 0 {
			return "", nil
		}
		cond, err := ev.evalCondition(args[0])
		if err != nil {
			return "", err
		}
		if cond {
			return ev.evalArg(args, 1, "")
		}
		return ev.evalArg(args, 2, "")

	case fnVacio:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(v) == "" {
			return "true", nil
		}
		return "false", nil

	case fnPorDefecto:
		v, err := ev.evalArg(args, 0, "")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(v) != "" {
			return v, nil
		}
		return ev.evalArg(args, 1, "")
	}

	return "", fmt.Errorf("%w: %s", errUnknownFunc, name)
}

// addToDate implements SUMAR_DIAS / SUMAR_MESES: parse the date argument, add
// n*daysPerUnit days and reformat.
func (ev *evaluator) addToDate(args []*Expression, daysPerUnit int) (string, error) {
	v, err := ev.evalArg(args, 0, "")
	if err != nil {
		return "", err
	}
	n, err := ev.evalArgFloat(args, 1, 0)
	if err != nil {
		return "", err
	}
	format, err := ev.evalArg(args, 2, defaultDateFormat)
	if err != nil {
		return "", err
	}
	t := ev.parseDate(v).AddDate(0, 0, int(n)*daysPerUnit)
	return formatDate(t, format), nil
}

// dateLayouts are tried in order when parsing a date argument.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// parseDate parses a date value, falling back to the render instant when the
// value is empty or malformed. Printing with a fallback date beats failing
// the label.
func (ev *evaluator) parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return ev.ctx.Now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return ev.ctx.Now
}

// formatDate expands the AAAA/AA/MM/DD tokens by literal substring
// replacement. AAAA must run before AA or the four-digit year would collide
// with the two-digit token. There is no time-of-day model: hh/mm/ss always
// render "00".
func formatDate(t time.Time, format string) string {
	if format == "" {
		format = defaultDateFormat
	}
	out := format
	out = strings.ReplaceAll(out, "AAAA", fmt.Sprintf("%04d", t.Year()))
	out = strings.ReplaceAll(out, "AA", fmt.Sprintf("%02d", t.Year()%100))
	out = strings.ReplaceAll(out, "MM", fmt.Sprintf("%02d", int(t.Month())))
	out = strings.ReplaceAll(out, "DD", fmt.Sprintf("%02d", t.Day()))
	out = strings.ReplaceAll(out, "hh", "00")
	out = strings.ReplaceAll(out, "mm", "00")
	out = strings.ReplaceAll(out, "ss", "00")
	return out
}

// expandLote builds a batch code: date tokens from now, then every maximal
// run of '#' replaced by rowIndex+1 zero-padded to the run's length.
func expandLote(format string, now time.Time, rowIndex int) string {
	withDate := formatDate(now, format)
	var sb strings.Builder
	for i := 0; i < len(withDate); {
		if withDate[i] != '#' {
			sb.WriteByte(withDate[i])
			i++
			continue
		}
		j := i
		for j < len(withDate) && withDate[j] == '#' {
			j++
		}
		sb.WriteString(fmt.Sprintf("%0*d", j-i, rowIndex+1))
		i = j
	}
	return sb.String()
}

func clampDecimals(d int) int {
	if d < 0 {
		return 0
	}
	if d > 10 {
		return 10
	}
	return d
}
