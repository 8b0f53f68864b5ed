// Package scoring implements the heuristic risk-assessment pipeline behind
// the URL phishing checker, the phishing-email checker, and the OWASP
// configuration scanner.
//
// Architecture overview:
//
//   - Each scorer is a stateless, single-shot pipeline: probes are fanned out
//     through the probe package, pure signal extractors run over the joined
//     probe results, and an aggregator reduces the triggered signals to a
//     score plus a discrete verdict or grade.
//   - URLScorer and EmailScorer accumulate points additively (higher is
//     riskier, no upper bound); HeaderScanner deducts penalties from a
//     100-point baseline (higher is safer, clamped at zero). The two models
//     are deliberately kept separate because their semantics differ.
//   - Every weight, threshold, and probe budget lives in Config so callers
//     construct scorers explicitly instead of reading globals.
//
// Probe failures never abort a scoring pass: a failed probe either
// contributes its own risk signal (unreachable page, failed MX lookup) or is
// silently skipped (unknown domain age). The one hard error is the header
// scanner's top-level fetch failing, since no partial grade is meaningful
// without a response to inspect.
package scoring
