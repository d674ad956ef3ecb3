package appupdater

import (
	"io"

	"appupdater/internal/ui"
)

// Presenter is the surface prompts are shown on. See SetPresenter.
type Presenter = ui.Presenter

// Prompt is what a Presenter is asked to show.
type Prompt = ui.Prompt

// Model is a Bubble Tea model that hosts prompts as a dialog, a banner or a
// notification. It implements Presenter.
type Model = ui.Model

// ModelOption configures a Model.
type ModelOption = ui.ModelOption

// NewModel returns a Presenter for Bubble Tea programs.
func NewModel(opts ...ModelOption) *Model {
	return ui.NewModel(opts...)
}

// NewWriterPresenter returns a Presenter that prints prompts to w.
func NewWriterPresenter(w io.Writer) Presenter {
	return ui.NewWriterPresenter(w)
}
