package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/presenter"
	"fundexplorer/internal/resource"
)

// browseRows bounds the fund table printed after each load.
const browseRows = 20

const browseHelp = `Type text to search by name; an empty line shows the top funds again.
  :cat NAME     filter by category (all, equity, debt, hybrid, solution, other)
  :open CODE    show a scheme
  :range R      switch the scheme view to 1M, 3M, 6M or 1Y
  :refresh      reload the top funds
  :help         show this help
  :quit         exit`

// syncWriter serializes writes from the input loop and from background loads.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// browser is one interactive session.
type browser struct {
	app    *app
	out    io.Writer
	home   *presenter.Home
	detail *presenter.Detail

	// prev is only touched from the Home subscriber, which runs serially
	prev presenter.HomeState
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively search funds and inspect schemes",
		Long:  "Interactive fund browser.\n\n" + browseHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}
			b := &browser{app: a, out: out, prev: presenter.NewHomeState()}
			b.home = presenter.NewHome(a.service, presenter.HomeConfig{
				TopLimit: a.cfg.HomeLimit,
				Debounce: a.cfg.SearchDebounce,
				Logger:   a.logger,
			}, b.renderHome)
			defer b.home.Close()

			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(b.out, mutedStyle.Render("Loading top funds... (:help for commands)"))
	b.home.Start(ctx)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := b.handle(ctx, strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
	}
	return scanner.Err()
}

// handle executes one input line and reports whether the session should end.
func (b *browser) handle(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, ":") {
		b.home.SetQuery(ctx, line)
		return false
	}

	command, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "quit", "q":
		return true
	case "help":
		fmt.Fprintln(b.out, browseHelp)
	case "cat":
		c, err := parseCategoryFlag(arg)
		if err != nil {
			printError(b.out, err.Error())
			return false
		}
		b.home.SelectCategory(c)
	case "open":
		if arg == "" {
			printError(b.out, "usage: :open CODE")
			return false
		}
		b.open(ctx, arg)
	case "range":
		tr, err := fund.ParseTimeRange(arg)
		if err != nil {
			printError(b.out, err.Error())
			return false
		}
		if b.detail == nil {
			printError(b.out, "open a scheme first with :open CODE")
			return false
		}
		b.renderDetail(b.detail.SelectRange(tr))
	case "refresh":
		b.home.Refresh(ctx)
	default:
		printError(b.out, fmt.Sprintf("unknown command :%s (:help lists commands)", command))
	}
	return false
}

func (b *browser) open(ctx context.Context, code string) {
	var tr fund.TimeRange
	if b.detail != nil {
		tr = b.detail.State().Range
	}

	b.detail = presenter.NewDetail(b.app.service, code, nil, presenter.WithDetailLogger(b.app.logger))
	if tr.Months > 0 {
		b.detail.SelectRange(tr)
	}
	b.renderDetail(b.detail.Load(ctx))
}

func (b *browser) renderDetail(s presenter.DetailState) {
	if s.Detail.IsError() {
		printError(b.out, fmt.Sprintf("%s: %s (:open %s to retry)", s.Code, s.Detail.Kind.Message(), s.Code))
		return
	}
	printDetail(b.out, s, true)
}

// renderHome prints the fund list whenever a load finishes or the category
// changes. Intermediate states are skipped.
func (b *browser) renderHome(s presenter.HomeState) {
	prev := b.prev
	b.prev = s

	finished := prev.Loading && !s.Loading
	if !finished && s.Category == prev.Category {
		return
	}

	if s.ErrKind != resource.KindNone {
		printError(b.out, s.Error()+" (:refresh to retry)")
	}

	header := fmt.Sprintf("%d funds", len(s.Visible))
	if s.Query != "" {
		header += fmt.Sprintf(" matching %q", s.Query)
	}
	if s.Category != fund.CategoryAll {
		header += fmt.Sprintf(" in %s", s.Category)
	}
	fmt.Fprintln(b.out, titleStyle.Render(header))
	printFunds(b.out, s.Visible, browseRows)
}
