package components

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/roi"
	"glcm-texture/internal/services"
)

// ParameterPanel collects the per-click configuration: region, step, and
// which columns to produce.
type ParameterPanel struct {
	container    *fyne.Container
	roiEntry     *widget.Entry
	polygonEntry *widget.Entry
	stepEntry    *widget.Entry
	basicCheck   *widget.Check
	countsCheck  *widget.Check
	features     []glcm.Feature
	featureCheck []*widget.Check
}

func NewParameterPanel() *ParameterPanel {
	p := &ParameterPanel{features: glcm.AllFeatures()}
	p.createComponents()
	p.buildLayout()
	p.SetConfig(glcm.DefaultConfig())
	return p
}

func (p *ParameterPanel) createComponents() {
	p.roiEntry = widget.NewEntry()
	p.roiEntry.SetPlaceHolder("x,y,w,h (empty = whole image)")
	p.polygonEntry = widget.NewEntry()
	p.polygonEntry.SetPlaceHolder("x1,y1 x2,y2 x3,y3 ...")
	p.stepEntry = widget.NewEntry()

	p.basicCheck = widget.NewCheck("Show basic values", nil)
	p.countsCheck = widget.NewCheck("Check counts", nil)
	p.featureCheck = make([]*widget.Check, len(p.features))
	for i, f := range p.features {
		p.featureCheck[i] = widget.NewCheck(f.Title(), nil)
	}
}

func (p *ParameterPanel) buildLayout() {
	form := widget.NewForm(
		widget.NewFormItem("ROI", p.roiEntry),
		widget.NewFormItem("Polygon", p.polygonEntry),
		widget.NewFormItem("Step (pixels)", p.stepEntry),
	)

	checks := make([]fyne.CanvasObject, 0, len(p.featureCheck))
	for _, c := range p.featureCheck {
		checks = append(checks, c)
	}

	selectAll := widget.NewButton("All", func() { p.setFeatures(glcm.AllFeatureSet()) })
	selectNone := widget.NewButton("None", func() { p.setFeatures(0) })

	p.container = container.NewVBox(
		widget.NewLabelWithStyle("Parameters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewHBox(p.basicCheck, p.countsCheck),
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel("Features"), selectAll, selectNone),
		container.NewGridWithColumns(3, checks...),
	)
}

func (p *ParameterPanel) setFeatures(set glcm.FeatureSet) {
	for i, f := range p.features {
		p.featureCheck[i].SetChecked(set.Has(f))
	}
}

// SetConfig shows cfg in the widgets.
func (p *ParameterPanel) SetConfig(cfg glcm.Config) {
	p.stepEntry.SetText(strconv.Itoa(cfg.Step))
	p.basicCheck.SetChecked(cfg.ShowBasic)
	p.countsCheck.SetChecked(cfg.CheckCounts)
	p.setFeatures(cfg.Features)
}

// SetRect fills the ROI entry with r and clears the polygon, which the two
// regions cannot share.
func (p *ParameterPanel) SetRect(r image.Rectangle) {
	p.polygonEntry.SetText("")
	p.roiEntry.SetText(roi.FormatRect(r))
}

// Config builds a fresh configuration from the current widget state.
func (p *ParameterPanel) Config() (glcm.Config, error) {
	step, err := strconv.Atoi(strings.TrimSpace(p.stepEntry.Text))
	if err != nil {
		return glcm.Config{}, fmt.Errorf("%w: step %q is not a number", glcm.ErrInvalidInput, p.stepEntry.Text)
	}

	var set glcm.FeatureSet
	for i, f := range p.features {
		if p.featureCheck[i].Checked {
			set = set.With(f)
		}
	}

	cfg := glcm.Config{
		Step:        step,
		Features:    set,
		ShowBasic:   p.basicCheck.Checked,
		CheckCounts: p.countsCheck.Checked,
	}
	return cfg, cfg.Validate()
}

// Region parses the ROI or polygon entry. Only one may be filled.
func (p *ParameterPanel) Region() (services.Region, error) {
	rectText := strings.TrimSpace(p.roiEntry.Text)
	polyText := strings.TrimSpace(p.polygonEntry.Text)
	if rectText != "" && polyText != "" {
		return services.Region{}, fmt.Errorf("%w: fill either ROI or polygon, not both", glcm.ErrInvalidInput)
	}

	if polyText != "" {
		points, err := roi.ParsePolygon(polyText)
		if err != nil {
			return services.Region{}, err
		}
		return services.Region{Polygon: points}, nil
	}

	r, err := roi.ParseRect(rectText)
	if err != nil {
		return services.Region{}, err
	}
	return services.Region{Rect: r}, nil
}

func (p *ParameterPanel) GetContainer() *fyne.Container {
	return p.container
}
