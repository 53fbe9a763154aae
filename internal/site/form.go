package site

import (
	"strings"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// Submission is the record collected from a valid contact form.
type Submission map[string]string

// ValidateField validates the control with the given id and reflects the
// result on the document. Missing controls count as valid.
func (v *View) ValidateField(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validateField(v.formControl(id))
}

// ValidateForm validates every required control of the contact form.
func (v *View) ValidateForm() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validateForm(v.form())
}

// SubmitForm stores values into the contact form, validates it and, when
// valid, acknowledges, resets and refocuses it.
func (v *View) SubmitForm(values map[string]string) (Submission, Outcome) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitForm(values)
}

func (v *View) form() dom.Element {
	return v.doc.GetElementByID(IDContactForm)
}

// formControl returns the contact form control with the given id, or a
// missing element when id names anything else.
func (v *View) formControl(id string) dom.Element {
	el := v.doc.GetElementByID(id)
	if !el.HasClass(ClassFormControl) || !v.form().Contains(el) {
		return dom.Element{}
	}
	return el
}

func (v *View) controls(form dom.Element) []dom.Element {
	return form.FindAll(dom.ByClass(ClassFormControl))
}

func (v *View) validateField(input dom.Element) bool {
	if !input.Exists() {
		return true
	}
	value := controlValue(input)
	rule := Check(Field{
		Type:     controlType(input),
		Required: input.HasAttr("required"),
		Value:    value,
	})
	valid := rule == RuleNone

	input.ToggleClass(ClassInvalid, !valid)
	input.ToggleClass(ClassValid, valid && strings.TrimSpace(value) != "")
	input.SetAttr(AttrAriaInvalid, boolAttr(!valid))

	parent := input.Parent()
	errEl := parent.Find(dom.ByClass(ClassErrorMessage))
	if !valid {
		if !errEl.Exists() {
			errEl = v.doc.CreateElement("span")
			errEl.SetAttr("class", ClassErrorMessage)
			errEl.SetAttr("style", "color: #ef4444; font-size: 0.85rem; margin-top: 4px; display: block")
			errEl.SetAttr("role", "alert")
			errEl.SetAttr("id", ErrorPrefix+input.ID())
			parent.AppendChild(errEl)
		}
		errEl.SetText(rule.Message(v.state.Lang))
		input.SetAttr(AttrAriaDescBy, errEl.ID())
	} else if errEl.Exists() {
		errEl.Remove()
		input.RemoveAttr(AttrAriaDescBy)
	}
	return valid
}

func (v *View) validateForm(form dom.Element) bool {
	valid := true
	for _, input := range v.controls(form) {
		if !input.HasAttr("required") {
			continue
		}
		if !v.validateField(input) {
			valid = false
		}
	}
	return valid
}

func (v *View) submitForm(values map[string]string) (Submission, Outcome) {
	form := v.form()
	if !form.Exists() {
		return nil, Outcome{}
	}
	for _, input := range v.controls(form) {
		name, _ := input.Attr("name")
		if value, ok := values[name]; ok && name != "" {
			setControlValue(input, value)
		}
	}

	valid := v.validateForm(form)
	out := Outcome{Handled: true, PreventDefault: true, Valid: &valid}
	if !valid {
		return nil, out
	}

	record := make(Submission)
	for _, input := range v.controls(form) {
		if name, ok := input.Attr("name"); ok && name != "" {
			record[name] = controlValue(input)
		}
	}

	ack := MessagesFor(v.state.Lang).Acknowledgement
	v.state.Acknowledgement = ack
	out.Acknowledgement = ack
	v.announce(ack, PriorityPolite)

	v.resetForm(form)
	v.focus(form.Find(dom.ByTag("input")))
	return record, out
}

// resetForm empties every control and returns it to the untouched state.
func (v *View) resetForm(form dom.Element) {
	for _, input := range v.controls(form) {
		setControlValue(input, "")
		input.RemoveClass(ClassValid)
		input.RemoveClass(ClassInvalid)
		input.RemoveAttr(AttrAriaInvalid)
		input.RemoveAttr(AttrAriaDescBy)
	}
	for _, errEl := range form.FindAll(dom.ByClass(ClassErrorMessage)) {
		errEl.Remove()
	}
}

// focusField pins inputs at 16px so iOS does not zoom on focus.
func (v *View) focusField(id string) {
	el := v.doc.GetElementByID(id)
	switch el.Tag() {
	case "input", "select", "textarea":
	default:
		return
	}
	if el.Style("font-size") != "16px" {
		el.SetStyle("font-size", "16px")
	}
	v.focus(el)
}

func controlType(el dom.Element) string {
	if el.Tag() != "input" {
		return el.Tag()
	}
	t, ok := el.Attr("type")
	if !ok {
		return "text"
	}
	return strings.ToLower(t)
}

func controlValue(el dom.Element) string {
	switch el.Tag() {
	case "textarea":
		return el.Text()
	case "select":
		if opt := el.Find(dom.And(dom.ByTag("option"), dom.HasAttr("selected"))); opt.Exists() {
			return optionValue(opt)
		}
		if opt := el.Find(dom.ByTag("option")); opt.Exists() {
			return optionValue(opt)
		}
		return ""
	default:
		v, _ := el.Attr("value")
		return v
	}
}

func optionValue(opt dom.Element) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return opt.Text()
}

func setControlValue(el dom.Element, value string) {
	switch el.Tag() {
	case "textarea":
		el.SetText(value)
	case "select":
		for _, opt := range el.FindAll(dom.ByTag("option")) {
			if value != "" && optionValue(opt) == value {
				opt.SetAttr("selected", "")
			} else {
				opt.RemoveAttr("selected")
			}
		}
	default:
		if value == "" {
			el.RemoveAttr("value")
			return
		}
		el.SetAttr("value", value)
	}
}
