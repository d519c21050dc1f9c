package model

func Text(opts ...QuestionOption) *Question { return NewQuestion(KindText, opts...) }

func Comment(opts ...QuestionOption) *Question { return NewQuestion(KindComment, opts...) }

func RadioGroup(opts ...QuestionOption) *Question { return NewQuestion(KindRadioGroup, opts...) }

func Dropdown(opts ...QuestionOption) *Question { return NewQuestion(KindDropdown, opts...) }

func Checkbox(opts ...QuestionOption) *Question { return NewQuestion(KindCheckbox, opts...) }

func ImagePicker(opts ...QuestionOption) *Question { return NewQuestion(KindImagePicker, opts...) }

func Boolean(opts ...QuestionOption) *Question { return NewQuestion(KindBoolean, opts...) }

func SignaturePad(opts ...QuestionOption) *Question { return NewQuestion(KindSignaturePad, opts...) }

func MultipleText(opts ...QuestionOption) *Question { return NewQuestion(KindMultipleText, opts...) }

func Rating(opts ...QuestionOption) *Question { return NewQuestion(KindRating, opts...) }

func File(opts ...QuestionOption) *Question { return NewQuestion(KindFile, opts...) }

func Matrix(opts ...QuestionOption) *Question { return NewQuestion(KindMatrix, opts...) }

func MatrixDropdown(opts ...QuestionOption) *Question {
	return NewQuestion(KindMatrixDropdown, opts...)
}

func MatrixDynamic(opts ...QuestionOption) *Question {
	return NewQuestion(KindMatrixDynamic, opts...)
}

// TagBox is a multi value dropdown backed by the select2 widget.
func TagBox(opts ...QuestionOption) *Question { return NewQuestion(KindTagBox, opts...) }

// DatePicker is a text question using the jQuery UI date picker.
func DatePicker(opts ...QuestionOption) *Question { return NewQuestion(KindDatePicker, opts...) }

// BootstrapDatePicker is a text question using the bootstrap date picker.
func BootstrapDatePicker(opts ...QuestionOption) *Question {
	return NewQuestion(KindBootstrapDatePicker, opts...)
}

// Select2 is a dropdown rendered through the select2 widget.
func Select2(opts ...QuestionOption) *Question {
	base := []QuestionOption{
		WithParam("render_as", "select2"),
		WithParam("select2_config", ""),
	}
	return NewQuestion(KindDropdown, append(base, opts...)...)
}

func BarRating(opts ...QuestionOption) *Question { return NewQuestion(KindBarRating, opts...) }

func SortableList(opts ...QuestionOption) *Question {
	return NewQuestion(KindSortableList, opts...)
}

func NoUISlider(opts ...QuestionOption) *Question { return NewQuestion(KindNoUISlider, opts...) }

// Editor is a rich text question backed by CKEditor.
func Editor(opts ...QuestionOption) *Question { return NewQuestion(KindEditor, opts...) }

func BootstrapSlider(opts ...QuestionOption) *Question {
	return NewQuestion(KindBootstrapSlider, opts...)
}

func EmotionsRatings(opts ...QuestionOption) *Question {
	return NewQuestion(KindEmotionsRatings, opts...)
}

// Microphone records audio through RecordRTC.
func Microphone(opts ...QuestionOption) *Question { return NewQuestion(KindMicrophone, opts...) }

// HTML embeds a static html block.
func HTML(html string, opts ...QuestionOption) *Question {
	return NewQuestion(KindHTML, append([]QuestionOption{WithParam("html", html)}, opts...)...)
}

// Image embeds an image block.
func Image(link string, opts ...QuestionOption) *Question {
	return NewQuestion(KindImage, append([]QuestionOption{WithParam("image_link", link)}, opts...)...)
}

// Expression displays the result of an expression.
func Expression(expression string, opts ...QuestionOption) *Question {
	return NewQuestion(KindExpression, append([]QuestionOption{WithParam("expression", expression)}, opts...)...)
}
