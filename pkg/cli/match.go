package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockreg/pkg/cli/internal/output"
	"github.com/getmockd/mockreg/pkg/cli/internal/parse"
	"github.com/getmockd/mockreg/pkg/config"
	"github.com/getmockd/mockreg/pkg/mock"
	"github.com/getmockd/mockreg/pkg/registry"
)

// ErrUnmatched is returned by match when at least one call found no mock.
var ErrUnmatched = errors.New("request did not match any registered mock")

type matchOptions struct {
	method  string
	headers []string
	data    string
	repeat  int
}

type callResult struct {
	Call    int      `json:"call"`
	Matched bool     `json:"matched"`
	MockID  string   `json:"mockId,omitempty"`
	Mock    string   `json:"mock,omitempty"`
	Status  int      `json:"status,omitempty"`
	Body    string   `json:"body,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type matchResult struct {
	Request   string       `json:"request"`
	Calls     []callResult `json:"calls"`
	Remaining []string     `json:"remaining"`
}

func newMatchCommand(global *globalOptions) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match [flags] URL",
		Short: "Replay a request against the registered mocks",
		Example: `  # Which mock answers GET /users?
  mockreg match -f mocks.yaml http://api.example.com/users

  # Send the same POST three times to walk through queued mocks
  mockreg match -f 'mocks/**/*.yaml' -X POST -H 'Content-Type: application/json' \
      -d '{"qty":2}' --repeat 3 http://api.example.com/orders`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", opts.repeat)
			}
			header, err := parse.Headers(opts.headers)
			if err != nil {
				return err
			}

			mocks, _, err := global.loadMocks(cmd)
			if err != nil {
				return err
			}
			reg := mock.NewRegistry(registry.WithLogger(global.logger(cmd)))
			if err := config.Register(reg, mocks); err != nil {
				return err
			}

			result := matchResult{}
			unmatched := false
			for i := 1; i <= opts.repeat; i++ {
				req, err := mock.BuildRequest(opts.method, args[0], header.Clone(), []byte(opts.data))
				if err != nil {
					return err
				}
				result.Request = req.String()

				call := callResult{Call: i}
				resp, err := mock.Find(reg, req)
				var nme *mock.NoMatchError
				switch {
				case err == nil:
					call.Matched = true
					call.MockID = resp.ID
					call.Mock = describeMock(resp)
					call.Status = resp.Reply.StatusCode()
					call.Body = resp.Reply.Body
				case errors.As(err, &nme):
					unmatched = true
					call.Reasons = nme.Reasons
					call.Error = err.Error()
				default:
					return err
				}
				result.Calls = append(result.Calls, call)
			}
			result.Remaining = remaining(reg)

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				if err := output.JSON(out, result); err != nil {
					return err
				}
			} else {
				for _, c := range result.Calls {
					if c.Matched {
						fmt.Fprintf(out, "#%d %s -> %s [%d]\n", c.Call, result.Request, c.Mock, c.Status)
						if c.Body != "" {
							fmt.Fprintf(out, "    %s\n", c.Body)
						}
						continue
					}
					fmt.Fprintf(out, "#%d %s\n", c.Call, c.Error)
				}
				fmt.Fprintf(out, "\n%d mock(s) remain registered\n", len(result.Remaining))
			}

			if unmatched {
				return ErrUnmatched
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.method, "method", "X", "GET", "HTTP method")
	f.StringArrayVarP(&opts.headers, "header", "H", nil, `Request header "Name: value" (repeatable)`)
	f.StringVarP(&opts.data, "data", "d", "", "Request body")
	f.IntVar(&opts.repeat, "repeat", 1, "Number of times to send the request")
	return cmd
}

func describeMock(m *mock.Response) string {
	if m.Name != "" {
		return fmt.Sprintf("%s (%s)", m.Name, m.String())
	}
	return m.String()
}

// remaining describes the mocks still registered, never returning nil.
func remaining(reg mock.Registry) []string {
	registered := reg.Registered()
	out := make([]string, 0, len(registered))
	for _, m := range registered {
		out = append(out, describeMock(m))
	}
	return out
}
