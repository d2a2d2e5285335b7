package rules

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/John-Robertt/override-go/internal/model"
)

// RuleError describes why a single line was rejected. Callers attach the
// source and line number when wrapping it into a ParseError.
type RuleError struct {
	Code    string
	Message string
	Hint    string
	Cause   error
}

func (e *RuleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *RuleError) Unwrap() error { return e.Cause }

type ParseError struct {
	AppError model.AppError
	Cause    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ParseTable parses an ordered rule table. Blank lines and comments are
// skipped. Exactly one MATCH is required and it must come last.
func ParseTable(source string, lines []string) ([]model.Rule, error) {
	out := make([]model.Rule, 0, len(lines))
	matchLine := 0
	for i, raw := range lines {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if matchLine != 0 {
			return nil, tableError(source, i+1, raw, &RuleError{
				Code:    "RULE_PARSE_ERROR",
				Message: "MATCH 之后不允许再有规则",
				Hint:    fmt.Sprintf("MATCH at line %d", matchLine),
			})
		}
		r, err := ParseInlineRule(line)
		if err != nil {
			return nil, tableError(source, i+1, raw, err)
		}
		if r.Type == "MATCH" {
			matchLine = i + 1
		}
		out = append(out, r)
	}
	if matchLine == 0 {
		return nil, &ParseError{
			AppError: model.AppError{
				Code:    "RULE_PARSE_ERROR",
				Message: "缺少兜底规则 MATCH,<ACTION>",
				Stage:   "parse_rules",
				URL:     source,
			},
		}
	}
	return out, nil
}

func tableError(source string, lineNo int, raw string, err error) error {
	app := model.AppError{
		Code:    "RULE_PARSE_ERROR",
		Message: "invalid rule line",
		Stage:   "parse_rules",
		URL:     source,
		Line:    lineNo,
		Snippet: truncateSnippet(raw, 200),
	}
	var re *RuleError
	if errors.As(err, &re) {
		app.Code = re.Code
		app.Message = re.Message
		app.Hint = re.Hint
		return &ParseError{AppError: app, Cause: re.Cause}
	}
	return &ParseError{AppError: app, Cause: err}
}

// ParseInlineRule parses one "TYPE,VALUE,ACTION[,no-resolve]" line.
func ParseInlineRule(line string) (model.Rule, error) {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if line == "" {
		return model.Rule{}, &RuleError{Code: "RULE_PARSE_ERROR", Message: "rule line is empty"}
	}
	if strings.HasPrefix(line, "#") {
		return model.Rule{}, &RuleError{Code: "RULE_PARSE_ERROR", Message: "rule line is comment"}
	}

	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	typ := strings.ToUpper(parts[0])
	if typ == "" {
		return model.Rule{}, &RuleError{Code: "RULE_PARSE_ERROR", Message: "规则类型不能为空"}
	}

	if typ == "MATCH" {
		if len(parts) != 2 || parts[1] == "" {
			return model.Rule{}, &RuleError{Code: "RULE_PARSE_ERROR", Message: "MATCH 规则必须是 MATCH,<ACTION>"}
		}
		return model.Rule{Type: typ, Action: parts[1]}, nil
	}

	validate, ok := valueCheckers[typ]
	if !ok {
		return model.Rule{}, &RuleError{
			Code:    "UNSUPPORTED_RULE_TYPE",
			Message: fmt.Sprintf("不支持的规则类型：%s", typ),
		}
	}

	var r model.Rule
	switch len(parts) {
	case 3:
		r = model.Rule{Type: typ, Value: parts[1], Action: parts[2]}
	case 4:
		if !allowsNoResolve(typ) || !strings.EqualFold(parts[3], "no-resolve") {
			return model.Rule{}, &RuleError{
				Code:    "RULE_PARSE_ERROR",
				Message: fmt.Sprintf("%s 的可选项不合法", typ),
				Hint:    "only IP-CIDR/IP-CIDR6/GEOIP accept no-resolve",
			}
		}
		r = model.Rule{Type: typ, Value: parts[1], Action: parts[2], NoResolve: true}
	default:
		return model.Rule{}, &RuleError{
			Code:    "RULE_PARSE_ERROR",
			Message: "规则字段数量不合法",
			Hint:    "expected: TYPE,VALUE,ACTION[,no-resolve]",
		}
	}

	if r.Value == "" || r.Action == "" {
		return model.Rule{}, &RuleError{Code: "RULE_PARSE_ERROR", Message: "规则 VALUE/ACTION 不能为空"}
	}
	if strings.EqualFold(r.Action, "no-resolve") {
		return model.Rule{}, &RuleError{
			Code:    "RULE_PARSE_ERROR",
			Message: "规则缺少 ACTION（不允许仅写 no-resolve）",
			Hint:    "expected: TYPE,VALUE,ACTION[,no-resolve]",
		}
	}
	if err := validate(r.Value); err != nil {
		return model.Rule{}, &RuleError{
			Code:    "RULE_PARSE_ERROR",
			Message: fmt.Sprintf("%s 的 VALUE 不合法", typ),
			Cause:   err,
		}
	}
	return r, nil
}

// Format renders a rule back into the mihomo rule syntax.
func Format(r model.Rule) string {
	if r.Type == "MATCH" {
		return "MATCH," + r.Action
	}
	if r.NoResolve {
		return r.Type + "," + r.Value + "," + r.Action + ",no-resolve"
	}
	return r.Type + "," + r.Value + "," + r.Action
}

var valueCheckers = map[string]func(string) error{
	"DOMAIN":         noCheck,
	"DOMAIN-SUFFIX":  noCheck,
	"DOMAIN-KEYWORD": noCheck,
	"GEOSITE":        noCheck,
	"GEOIP":          noCheck,
	"RULE-SET":       noCheck,
	"PROCESS-NAME":   noCheck,
	"IP-CIDR":        validateCIDR(false),
	"IP-CIDR6":       validateCIDR(true),
	"DST-PORT":       validatePort,
}

func allowsNoResolve(typ string) bool {
	return typ == "IP-CIDR" || typ == "IP-CIDR6" || typ == "GEOIP"
}

func noCheck(string) error { return nil }

func validateCIDR(v6 bool) func(string) error {
	return func(s string) error {
		ip, _, err := net.ParseCIDR(s)
		if err != nil {
			return err
		}
		if is4 := ip.To4() != nil; is4 == v6 {
			return errors.New("cidr address family mismatch")
		}
		return nil
	}
}

func validatePort(s string) error {
	// mihomo also accepts ranges such as 8000-9000.
	ends := strings.SplitN(s, "-", 2)
	for _, p := range ends {
		n, err := strconv.Atoi(p)
		if err != nil {
			return err
		}
		if n < 0 || n > 65535 {
			return errors.New("port out of range")
		}
	}
	return nil
}

func truncateSnippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
