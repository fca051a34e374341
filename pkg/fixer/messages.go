package fixer

import "fmt"

// Message describes an applied fix. Key selects the text, Args fill the
// placeholders of parameterized messages.
type Message struct {
	Key  string
	Args []any
}

func msg(key string, args ...any) Message {
	return Message{Key: key, Args: args}
}

var messageTexts = map[string]string{
	"FD111": "Triple single quotes converted to triple double quotes.",
	"FD112": `Introductory quotes corrected to be %s"""`,
	"FD121": "Single line docstring put on one line.",
	"FD131": "Period added to summary line.",
	"FD141": "Blank line before function/method docstring removed.",
	"FD142": "Blank line inserted before class docstring.",
	"FD143": "Blank line inserted after class docstring.",
	"FD144": "Blank line inserted after docstring summary.",
	"FD145": "Blank line inserted after last paragraph of docstring.",
	"FD221": "Leading quotes put on separate line.",
	"FD222": "Trailing quotes put on separate line.",
	"FD242": "Blank line before class docstring removed.",
	"FD243": "Blank line after class docstring removed.",
	"FD244": "Blank line before function/method docstring removed.",
	"FD245": "Blank line after function/method docstring removed.",
	"FD247": "Blank line after last paragraph removed.",
	"FE101": "Tab converted to 4 spaces.",
	"FE111": "Indentation adjusted to be a multiple of four.",
	"FE121": "Indentation of continuation line corrected.",
	"FE122": "Missing indentation of continuation line corrected.",
	"FE123": "Closing bracket aligned to opening bracket.",
	"FE124": "Indentation of closing bracket corrected.",
	"FE125": "Indentation level changed.",
	"FE126": "Indentation level of hanging indentation changed.",
	"FE127": "Visual indentation corrected.",
	"FE201": "Extraneous whitespace removed.",
	"FE221": "Extraneous whitespace removed.",
	"FE225": "Missing whitespaces added.",
	"FE231": "Missing whitespace added.",
	"FE251": "Extraneous whitespace removed.",
	"FE261": "Whitespace around comment sign corrected.",
	"FE301": "One blank line inserted.",
	"FE303": "Superfluous blank lines removed.",
	"FE304": "Superfluous blank lines after function decorator removed.",
	"FE401": "Imports were put on separate lines.",
	"FE501": "Long lines have been shortened.",
	"FE502": "Redundant backslash in brackets removed.",
	"FE701": "Compound statement corrected.",
	"FE702": "Compound statement corrected.",
	"FE711": "Comparison to None/True/False corrected.",
	"FN804": "'%s' argument added.",
	"FN806": "'%s' argument removed.",
	"FW291": "Whitespace stripped from end of line.",
	"FW292": "Newline added to end of file.",
	"FW391": "Superfluous trailing blank lines removed from end of file.",
	"FW603": "'<>' replaced by '!='.",
}

// String renders the message in English.
func (m Message) String() string {
	switch m.Key {
	case "":
		return ""
	case "FE302+":
		n := argCount(m.Args)
		if n == 1 {
			return "1 blank line inserted."
		}
		return fmt.Sprintf("%d blank lines inserted.", n)
	case "FE302-":
		n := argCount(m.Args)
		if n == 1 {
			return "1 superfluous line removed."
		}
		return fmt.Sprintf("%d superfluous lines removed.", n)
	}
	text, ok := messageTexts[m.Key]
	if !ok {
		return m.Key
	}
	if len(m.Args) > 0 {
		return fmt.Sprintf(text, m.Args...)
	}
	return text
}

func argCount(args []any) int {
	if len(args) > 0 {
		if n, ok := args[0].(int); ok {
			return n
		}
	}
	return 0
}
