package probe

import (
	"context"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// DomainCreated resolves the registration date of a hostname via WHOIS.
// Lookup or parse failure yields StatusFailed; a record without a usable
// creation date yields StatusEmpty. Either way the caller treats the age as
// unknown and contributes no signal.
func (p *NetProber) DomainCreated(ctx context.Context, host string) WhoisResult {
	type lookup struct {
		raw string
		err error
	}
	done := make(chan lookup, 1)

	go func() {
		client := whois.NewClient()
		client.SetTimeout(p.WhoisTimeout)
		raw, err := client.Whois(host)
		done <- lookup{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return WhoisResult{Status: StatusFailed}
	case res := <-done:
		if res.err != nil {
			return WhoisResult{Status: StatusFailed}
		}
		info, err := whoisparser.Parse(res.raw)
		if err != nil || info.Domain == nil {
			return WhoisResult{Status: StatusFailed}
		}
		if info.Domain.CreatedDateInTime == nil {
			return WhoisResult{Status: StatusEmpty}
		}
		return WhoisResult{Status: StatusSuccess, Created: *info.Domain.CreatedDateInTime}
	}
}
