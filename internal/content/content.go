// Package content holds the landing page copy and stylesheet and builds the page tree
// from them.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"nexus-landing/internal/motion"
	"nexus-landing/internal/ui"
)

//go:embed page.yaml
var pageYAML []byte

//go:embed landing.css
var landingCSS string

// Stat is a value with a caption.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Hero is the first screen.
type Hero struct {
	Title   string   `yaml:"title"`
	Tagline string   `yaml:"tagline"`
	Badges  []string `yaml:"badges"`
	Action  string   `yaml:"action"`
}

// Step is one product journey card.
type Step struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// Journey is the product journey section.
type Journey struct {
	Title string `yaml:"title"`
	Intro string `yaml:"intro"`
	Steps []Step `yaml:"steps"`
	Stats []Stat `yaml:"stats"`
}

// SpecItem is a label/value row of a spec card.
type SpecItem struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Category is one spec card.
type Category struct {
	Name  string     `yaml:"name"`
	Score int        `yaml:"score"`
	Items []SpecItem `yaml:"items"`
}

// Specs is the technical specs section.
type Specs struct {
	Title      string     `yaml:"title"`
	Intro      string     `yaml:"intro"`
	Categories []Category `yaml:"categories"`
	Highlights []Stat     `yaml:"highlights"`
}

// Tier is one pricing card.
type Tier struct {
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Badge    string   `yaml:"badge"`
	Featured bool     `yaml:"featured"`
	Features []string `yaml:"features"`
}

// Pricing is the closing call to action.
type Pricing struct {
	Title   string   `yaml:"title"`
	Intro   string   `yaml:"intro"`
	Actions []string `yaml:"actions"`
	Stats   []Stat   `yaml:"stats"`
	Tiers   []Tier   `yaml:"tiers"`
}

// Page is the whole landing page copy.
type Page struct {
	Hero    Hero    `yaml:"hero"`
	Journey Journey `yaml:"journey"`
	Specs   Specs   `yaml:"specs"`
	Pricing Pricing `yaml:"pricing"`
}

// Parse decodes page copy from YAML and validates it.
func Parse(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse page content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page content: %w", err)
	}
	return &p, nil
}

// Load reads page copy from a YAML file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return Parse(data)
}

// Default returns the page copy compiled into the binary.
func Default() *Page {
	p, err := Parse(pageYAML)
	if err != nil {
		panic(err)
	}
	return p
}

// Stylesheet returns the CSS compiled into the binary.
func Stylesheet() string {
	return landingCSS
}

// Validate checks that every section has something to show.
func (p *Page) Validate() error {
	if p.Hero.Title == "" {
		return errors.New("hero title is empty")
	}
	if len(p.Journey.Steps) == 0 {
		return errors.New("journey has no steps")
	}
	if len(p.Specs.Categories) == 0 {
		return errors.New("specs have no categories")
	}
	for _, c := range p.Specs.Categories {
		if c.Score < 0 || c.Score > 100 {
			return fmt.Errorf("spec %q score %d outside 0..100", c.Name, c.Score)
		}
	}
	if len(p.Pricing.Tiers) == 0 {
		return errors.New("pricing has no tiers")
	}
	return nil
}

// IDs of nodes other packages look up.
const (
	HeroID  = "hero"
	SceneID = "scene"
)

// Built holds the nodes the app drives directly.
type Built struct {
	Hero  *ui.Node
	Scene *ui.Node
}

// Build appends the page to doc's root. Cards carry the collision marker
// (glass-effect); headings and cards carry the highlight marker (data-highlight).
func Build(doc *ui.Document, p *Page) Built {
	b := builder{doc: doc}
	root := doc.Root

	scene := ui.NewNode("div", SceneID, "")
	scene.Fixed = true
	scene.Interactive = false
	b.add(root, scene)

	hero := ui.NewNode("section", HeroID, "")
	b.add(root, hero)
	b.add(hero, ui.NewNode("heading", "", p.Hero.Title, "hero-title"))
	b.add(hero, ui.NewNode("text", "", p.Hero.Tagline, "tagline"))
	badges := b.grid(hero, len(p.Hero.Badges), "badges")
	for _, s := range p.Hero.Badges {
		b.hoverable(b.add(badges, ui.NewNode("badge", "", s, "badge", "glass-effect", "feature-card")))
	}
	if p.Hero.Action != "" {
		b.hoverable(b.add(hero, ui.NewNode("button", "", p.Hero.Action, "action")))
	}

	journey := b.section(root, "product-journey", p.Journey.Title, p.Journey.Intro)
	for _, s := range p.Journey.Steps {
		c := b.card(journey, s.Title)
		b.add(c, ui.NewNode("text", "", s.Description, "copy"))
		for _, f := range s.Features {
			b.add(c, ui.NewNode("text", "", f, "feature"))
		}
	}
	b.stats(journey, p.Journey.Stats, true)

	specs := b.section(root, "technical-specs", p.Specs.Title, p.Specs.Intro)
	grid := b.grid(specs, 4, "spec-grid")
	for _, cat := range p.Specs.Categories {
		c := b.card(grid, cat.Name)
		c.AddClass("spec-card")
		b.hoverable(c)
		for _, it := range cat.Items {
			row := b.grid(c, 2, "spec-row")
			b.add(row, ui.NewNode("text", "", it.Label, "label"))
			b.add(row, ui.NewNode("text", "", it.Value, "copy"))
		}
		b.add(c, ui.NewNode("text", "", "Performance Score: "+strconv.Itoa(cat.Score)+"/100", "score"))
	}
	b.stats(specs, p.Specs.Highlights, false)

	pricing := b.section(root, "pricing", p.Pricing.Title, p.Pricing.Intro)
	b.stats(pricing, p.Pricing.Stats, true)
	if len(p.Pricing.Actions) > 0 {
		actions := b.grid(pricing, len(p.Pricing.Actions), "actions")
		for _, a := range p.Pricing.Actions {
			b.hoverable(b.add(actions, ui.NewNode("button", "", a, "action")))
		}
	}
	tiers := b.grid(pricing, len(p.Pricing.Tiers), "tiers")
	for _, t := range p.Pricing.Tiers {
		c := b.card(tiers, t.Name)
		if t.Featured {
			c.AddClass("featured")
		}
		if t.Badge != "" {
			b.add(c, ui.NewNode("text", "", t.Badge, "tag"))
		}
		b.add(c, ui.NewNode("text", "", t.Price, "value"))
		for _, f := range t.Features {
			b.add(c, ui.NewNode("text", "", f, "feature"))
		}
		b.hoverable(b.add(c, ui.NewNode("button", "", "Choose "+t.Name, "action")))
	}

	return Built{Hero: hero, Scene: scene}
}

type builder struct {
	doc *ui.Document
}

func (b builder) add(parent, child *ui.Node) *ui.Node {
	b.doc.Append(parent, child)
	return child
}

func (b builder) section(parent *ui.Node, id, title, intro string) *ui.Node {
	s := b.add(parent, ui.NewNode("section", id, ""))
	inner := b.add(s, ui.NewNode("div", "", "", "container"))
	h := b.add(inner, ui.NewNode("heading", "", title, "section-title"))
	h.SetAttr("data-highlight", "text")
	if intro != "" {
		t := b.add(inner, ui.NewNode("text", "", intro, "intro"))
		t.SetAttr("data-highlight", "text")
	}
	return inner
}

func (b builder) grid(parent *ui.Node, cols int, class string) *ui.Node {
	g := b.add(parent, ui.NewNode("grid", "", "", class))
	g.SetAttr("cols", strconv.Itoa(max(1, cols)))
	return g
}

func (b builder) card(parent *ui.Node, title string) *ui.Node {
	c := b.add(parent, ui.NewNode("card", "", "", "glass-effect"))
	c.SetAttr("data-highlight", "card")
	b.add(c, ui.NewNode("heading", "", title, "card-title"))
	return c
}

// hoverable lets n take the pointer hover class.
func (b builder) hoverable(n *ui.Node) {
	n.SetAttr("data-hover", "")
}

func (b builder) stats(parent *ui.Node, stats []Stat, cards bool) {
	if len(stats) == 0 {
		return
	}
	g := b.grid(parent, len(stats), "stats")
	for _, s := range stats {
		var c *ui.Node
		if cards {
			c = b.add(g, ui.NewNode("card", "", "", "glass-effect"))
		} else {
			c = b.add(g, ui.NewNode("div", "", "", "highlight-on-scroll"))
		}
		b.add(c, ui.NewNode("text", "", s.Value, "value"))
		b.add(c, ui.NewNode("text", "", s.Label, "label"))
	}
}

// HeroFadeScale is the hero scale once it has fully scrolled out.
const HeroFadeScale = 0.8

// FadeHero fades the hero from 1 to 0 and shrinks it toward HeroFadeScale as its
// height scrolls past the top of the viewport.
func FadeHero(hero *ui.Node, scrollY float32) {
	if hero == nil {
		return
	}
	p := motion.Remap(scrollY, hero.Bounds.Y, hero.Bounds.Y+hero.Bounds.Height, 0, 1)
	hero.SetStyle("opacity", strconv.FormatFloat(float64(1-p), 'f', 3, 32))
	hero.Scale = 1 - p*(1-HeroFadeScale)
}
