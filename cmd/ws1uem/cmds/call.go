package cmds

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"ws1uem/internal/uem"

	"github.com/spf13/cobra"
)

var callMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// newCallCommand creates the call command, a raw generic API call.
//
// Usage:
//
//	ws1uem call GET system /info
//	ws1uem call GET mdm /devices/search --version 2 -p pagesize=10
//	ws1uem call POST system /groups/570 --data @og.json
func newCallCommand(opts *GlobalOptions) *cobra.Command {
	var (
		version int
		params  []string
		headers []string
		data    string
	)
	cmd := &cobra.Command{
		Use:   "call <METHOD> <module> [path]",
		Short: "Send a raw API call",
		Long: `Send a raw API call to /api/[v<version>/]<module>/<path>.

--data is sent as-is with a JSON content type; prefix it with @ to read it from a file.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			if !isCallMethod(method) {
				return fmt.Errorf("unsupported method %q, use one of %s", args[0], strings.Join(callMethods, ", "))
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			h := http.Header{}
			for _, kv := range headers {
				k, v, ok := strings.Cut(kv, ":")
				if !ok {
					return fmt.Errorf("invalid header %q, expected Name: value", kv)
				}
				h.Add(strings.TrimSpace(k), strings.TrimSpace(v))
			}
			req := uem.Request{Module: args[1], Version: version, Params: p, Header: h, Timeout: opts.Timeout}
			if len(args) == 3 {
				req.Path = args[2]
			}
			if data != "" {
				body, err := readData(data)
				if err != nil {
					return err
				}
				req.Data = body
				if h.Get("Content-Type") == "" {
					h.Set("Content-Type", "application/json")
				}
			}

			c, err := newClient(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			r, err := c.Do(cmd.Context(), method, req)
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "API version, 0 for the unversioned API")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter key=value, repeatable")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra header 'Name: value', repeatable")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body, or @file")
	return cmd
}

func isCallMethod(m string) bool {
	for _, c := range callMethods {
		if c == m {
			return true
		}
	}
	return false
}

func readData(data string) ([]byte, error) {
	if name, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read --data file: %w", err)
		}
		return b, nil
	}
	return []byte(data), nil
}
