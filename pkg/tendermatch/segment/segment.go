// Package segment turns the raw text of a tender document into an
// ordered list of groups and line items.
package segment

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
)

// Group is a named subdivision of a tender document (a lot).
type Group struct {
	Number   int
	Name     string
	Location string
	Items    []Item
}

// Item is one line entry of a group. Quantity and unit are best effort,
// not authoritative.
type Item struct {
	GroupNumber int
	Number      int
	Description string
	Unit        string
	Quantity    int
}

// Metadata holds identifiers best-effort detected from the document head.
type Metadata struct {
	TenderNumber string
	IssuingBody  string
}

// DefaultUnit is used when no unit token is recognized on an item line.
const DefaultUnit = "un"

var defaultGroupKeywords = []string{"grupo", "lote"}

var defaultEquipmentKeywords = []string{
	"camera", "câmera", "switch", "nobreak", "no-break", "servidor",
	"server", "rack", "dvr", "nvr", "gravador", "monitor", "cabo",
	"conector", "licença", "licenca", "software", "patch", "access point",
	"roteador", "firewall", "disco", "fonte", "suporte", "leitor",
	"controladora", "sensor",
}

var defaultUnitTokens = map[string]string{
	"un":       "un",
	"und":      "un",
	"unid":     "un",
	"unidade":  "un",
	"unidades": "un",
	"pç":       "pç",
	"pc":       "pç",
	"peça":     "pç",
	"peças":    "pç",
	"cx":       "cx",
	"caixa":    "cx",
	"kit":      "kit",
	"kits":     "kit",
	"m":        "m",
	"metro":    "m",
	"metros":   "m",
	"rolo":     "rolo",
}

var issuerKeywords = []string{
	"prefeitura", "universidade", "instituto", "secretaria",
	"tribunal", "ministério", "ministerio", "câmara", "camara",
	"fundação", "fundacao",
}

// Segmenter scans document text for group headers and item lines.
type Segmenter struct {
	groupKeywords     []string
	equipmentKeywords []string
	unitTokens        map[string]string
}

// NewSegmenter creates a segmenter with the default Portuguese
// procurement vocabulary.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		groupKeywords:     defaultGroupKeywords,
		equipmentKeywords: defaultEquipmentKeywords,
		unitTokens:        defaultUnitTokens,
	}
}

// AddEquipmentKeyword extends the keyword gate used to recognize item lines.
func (s *Segmenter) AddEquipmentKeyword(kw string) {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw != "" {
		s.equipmentKeywords = append(s.equipmentKeywords, kw)
	}
}

// headerMatch records one group-header occurrence: the byte offsets of
// the header line and the decoded ordinal plus label.
type headerMatch struct {
	start  int
	end    int
	number int
	label  string
}

// Segment splits text into groups of items. It returns at least one
// group: when no headers are found the whole text becomes an implicit
// group. Only unreadable or empty input is an error.
func (s *Segmenter) Segment(text string) ([]Group, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("segment: empty document: %w", internalerr.ErrInvalidInput)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("segment: text is not valid UTF-8: %w", internalerr.ErrInvalidInput)
	}

	headers := s.scanHeaders(text)
	if len(headers) == 0 {
		implicit := Group{Number: 1, Name: "Geral"}
		implicit.Items = s.scanItems(text, implicit.Number)
		return []Group{implicit}, nil
	}

	groups := make([]Group, 0, len(headers))
	for i, h := range headers {
		spanEnd := len(text)
		if i+1 < len(headers) {
			spanEnd = headers[i+1].start
		}
		g := Group{
			Number:   h.number,
			Name:     h.label,
			Location: detectLocation(h.label),
		}
		g.Items = s.scanItems(text[h.end:spanEnd], g.Number)
		groups = append(groups, g)
	}
	return groups, nil
}

var locationKeywords = []string{
	"campus", "câmpus", "bloco", "prédio", "predio", "sede", "anexo",
	"setor", "almoxarifado",
}

// detectLocation returns the label itself when it names a physical
// site, empty otherwise.
func detectLocation(label string) string {
	lower := strings.ToLower(label)
	for _, kw := range locationKeywords {
		if strings.Contains(lower, kw) {
			return label
		}
	}
	return ""
}

// scanHeaders walks the text line by line and records every group
// header in document order. The scan is stateless: offsets are computed
// from the walk itself, never from iterator state carried across calls.
func (s *Segmenter) scanHeaders(text string) []headerMatch {
	var matches []headerMatch
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lead := strings.Index(line, trimmed)
		if trimmed != "" {
			if number, label, ok := s.parseHeader(trimmed); ok {
				matches = append(matches, headerMatch{
					start:  offset + lead,
					end:    offset + len(line),
					number: number,
					label:  label,
				})
			}
		}
		offset += len(line)
	}
	return matches
}

// parseHeader matches "<keyword> <ordinal> <sep> <label>". The ordinal
// may be arabic or Roman; the separator is a dash or colon.
func (s *Segmenter) parseHeader(line string) (int, string, bool) {
	lower := strings.ToLower(line)
	var rest string
	for _, kw := range s.groupKeywords {
		if strings.HasPrefix(lower, kw) {
			rest = strings.TrimSpace(line[len(kw):])
			break
		}
	}
	if rest == "" {
		return 0, "", false
	}

	ordinal, tail := splitWord(rest)
	if ordinal == "" {
		return 0, "", false
	}
	ordinal = strings.TrimSuffix(ordinal, ":")

	var number int
	switch {
	case isArabic(ordinal):
		number, _ = strconv.Atoi(ordinal)
	case isRoman(ordinal):
		number = DecodeRoman(ordinal)
	default:
		return 0, "", false
	}

	label := strings.TrimLeftFunc(tail, func(r rune) bool {
		return r == '-' || r == '–' || r == '—' || r == ':' || unicode.IsSpace(r)
	})
	return number, strings.TrimSpace(label), true
}

// scanItems collects the item lines of one group span. Lines that do
// not look like items are skipped silently; a span with zero items is
// a valid, empty group.
func (s *Segmenter) scanItems(span string, groupNumber int) []Item {
	var items []Item
	for _, line := range strings.Split(span, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if item, ok := s.parseItemLine(line); ok {
			item.GroupNumber = groupNumber
			items = append(items, item)
		}
	}
	return items
}

// parseItemLine matches "<number> <sep> <description ...>" where the
// description contains at least one equipment-domain keyword. Unit and
// quantity are picked out of the description tail when present.
func (s *Segmenter) parseItemLine(line string) (Item, bool) {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "item") {
		line = strings.TrimSpace(line[len("item"):])
	}

	numTok, rest := splitWord(line)
	numTok = strings.TrimRight(numTok, ".-):")
	if !isArabic(numTok) {
		return Item{}, false
	}
	number, _ := strconv.Atoi(numTok)

	desc := strings.TrimLeftFunc(rest, func(r rune) bool {
		return r == '-' || r == '–' || r == '—' || r == '.' || r == ')' || r == ':' || unicode.IsSpace(r)
	})
	if desc == "" || !s.containsEquipmentKeyword(desc) {
		return Item{}, false
	}

	unit, qty := s.parseUnitQuantity(desc)
	return Item{
		Number:      number,
		Description: desc,
		Unit:        unit,
		Quantity:    qty,
	}, true
}

func (s *Segmenter) containsEquipmentKeyword(desc string) bool {
	lower := strings.ToLower(desc)
	for _, kw := range s.equipmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseUnitQuantity looks for a quantity near a unit token or after a
// "qtd"/"quantidade" label. Both default when unrecognized: unit "un",
// quantity 1.
func (s *Segmenter) parseUnitQuantity(desc string) (string, int) {
	unit := DefaultUnit
	qty := 0

	fields := strings.Fields(strings.ToLower(desc))
	for i, f := range fields {
		f = strings.Trim(f, ".,;:()")
		if canonical, ok := s.unitTokens[f]; ok {
			unit = canonical
			// number on either side of the unit token
			if i > 0 {
				if n, ok := parsePositiveInt(strings.Trim(fields[i-1], ".,;:()")); ok {
					qty = n
					continue
				}
			}
			if i+1 < len(fields) {
				if n, ok := parsePositiveInt(strings.Trim(fields[i+1], ".,;:()")); ok {
					qty = n
				}
			}
			continue
		}
		if isQuantityLabel(f) && i+1 < len(fields) {
			if n, ok := parsePositiveInt(strings.Trim(fields[i+1], ".,;:()")); ok {
				qty = n
			}
		}
	}

	if qty <= 0 {
		qty = 1
	}
	return unit, qty
}

func isQuantityLabel(f string) bool {
	switch strings.TrimRight(f, ".:") {
	case "qtd", "qtde", "quant", "quantidade":
		return true
	}
	return false
}

// DetectMetadata sniffs the tender number and issuing body from the
// first lines of the document. Both fields are best effort and may be
// empty.
func DetectMetadata(text string) Metadata {
	var meta Metadata
	lines := strings.Split(text, "\n")
	if len(lines) > 30 {
		lines = lines[:30]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if meta.TenderNumber == "" && (strings.Contains(lower, "edital") || strings.Contains(lower, "pregão") || strings.Contains(lower, "pregao")) {
			if n := extractProcessNumber(trimmed); n != "" {
				meta.TenderNumber = n
			}
		}
		if meta.IssuingBody == "" {
			for _, kw := range issuerKeywords {
				if strings.Contains(lower, kw) {
					meta.IssuingBody = trimmed
					break
				}
			}
		}
		if meta.TenderNumber != "" && meta.IssuingBody != "" {
			break
		}
	}
	return meta
}

// extractProcessNumber finds the first "123/2024"-shaped token.
func extractProcessNumber(line string) string {
	for _, f := range strings.Fields(line) {
		f = strings.Trim(f, ".,;:")
		slash := strings.IndexByte(f, '/')
		if slash <= 0 || slash == len(f)-1 {
			continue
		}
		if isArabic(f[:slash]) && isArabic(f[slash+1:]) {
			return f
		}
	}
	return ""
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx:]
}

func isArabic(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parsePositiveInt(s string) (int, bool) {
	if !isArabic(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
