package probe

import (
	"context"
	"net"
)

// LookupMX resolves mail-exchange records for a domain. A resolution error
// yields StatusFailed, a successful lookup with no records yields
// StatusEmpty; the email scorer penalizes both.
func (p *NetProber) LookupMX(ctx context.Context, domain string) MXResult {
	resolver := &net.Resolver{PreferGo: true}

	lookupCtx, cancel := context.WithTimeout(ctx, p.MXTimeout)
	defer cancel()

	records, err := resolver.LookupMX(lookupCtx, domain)
	if err != nil {
		return MXResult{Status: StatusFailed}
	}
	if len(records) == 0 {
		return MXResult{Status: StatusEmpty}
	}

	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		hosts = append(hosts, mx.Host)
	}
	return MXResult{Status: StatusSuccess, Hosts: hosts}
}
