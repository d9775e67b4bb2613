package check

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/skillvet/skillvet/internal/domain"
)

// Every pattern below runs on RE2, so matching is linear in the input.
// Spans between the tokens of a combination are bounded and never cross
// a line break.
var (
	shellInjection = anyPattern(
		`(?i)\b(?:curl|wget)\b[^\n|]{0,200}(?:\|[^\n|]{0,100}){0,3}\|[ \t]*(?:sudo[ \t]+)?(?:/usr)?(?:/bin/)?(?:ba|z|da|k|fi)?sh\b`,
		`(?i)\b(?:ba|z)?sh[ \t]+<\([ \t]*(?:curl|wget)\b`,
		`(?i)\b(?:ba|z)?sh[ \t]+-c[ \t]+["']?\$\([ \t]*(?:curl|wget)\b`,
		`(?im)\brm[ \t]+` + rmFlags + `[ \t]+(?:/|~/?|\$HOME/?)(?:\*|(?:bin|boot|dev|etc|home|lib|lib64|opt|root|sbin|srv|sys|usr|var)/?\*?)?(?:[ \t;&|]|$)`,
	)

	envDumping = anyPattern(
		`(?i)\bprintenv\b[^\n|]{0,80}\|[ \t]*(?:curl|wget|nc|ncat|netcat|base64|xxd)\b`,
		"(?im)(?:^[ \\t]*(?:[-*+][ \\t]+)?|\\brun[ \\t]+|[;&(`$][ \\t]*)(?:env|export[ \\t]+-p)\\b[^\\n|]{0,80}\\|[ \\t]*(?:curl|wget|nc|ncat|netcat|base64|xxd)\\b",
		`(?i)\b(?:curl|wget)\b[^\n]{0,200}\$\([ \t]*(?:printenv|env)[ \t]*\)`,
		"(?i)\\b(?:curl|wget)\\b[^\\n]{0,200}`[ \\t]*(?:printenv|env)[ \\t]*`",
		`(?i)\b(?:curl|wget)\b[^\n]{0,200}(?:-d|--data[a-z-]*|--upload-file|-T|-F|--form)[ \t=]+["']?[a-z]*=?@(?:/proc/self/environ|\.env)\b`,
		`(?i)/proc/(?:self|\d{1,7})/environ\b`,
		`(?i)\b(?:requests\.(?:post|put)|fetch|axios\.(?:post|put)|http\.post)[ \t]*\([^\n]{0,200}(?:os\.environ|process\.env)(?:[^.\[\w]|$)`,
	)

	promptInjection = anyPattern(
		`(?i)\b(?:ignore|disregard|forget|override|bypass)[ \t]+(?:(?:all|any|the|your|my|of|these|those|every)[ \t]+){0,3}(?:previous|prior|above|earlier|preceding|system|safety|original|existing)[ \t]+(?:instructions?|prompts?|rules|guidelines|directives|messages|constraints|guardrails)\b`,
		`(?i)\b(?:ignore|disregard|forget)[ \t]+(?:everything|anything)[ \t]+(?:above|before|previously|you were told)\b`,
		`(?i)\b(?:ignore|disregard|forget)[ \t]+(?:(?:all|any|the|your|these|those)[ \t]+){0,2}(?:instructions?|prompts?|rules|guidelines|directives)[ \t]+(?:above|before|you (?:were|have been) given)\b`,
		`(?i)\byou[ \t]+are[ \t]+now[ \t]+(?:in[ \t]+)?(?:DAN|developer[ \t]+mode|jailbroken|unrestricted|an?[ \t]+unfiltered)\b`,
		`(?i)\b(?:reveal|print|show|output|repeat|leak)[ \t]+(?:(?:your|the|its)[ \t]+){0,2}(?:system|hidden|initial)[ \t]+(?:prompt|instructions)\b`,
	)

	obfuscatedCommands = anyPattern(
		`(?i)\b(?:base64[ \t]+(?:-[a-z]*d[a-z]*|--decode)|xxd[ \t]+-r[a-z]*(?:[ \t]+-p)?|openssl[ \t]+(?:base64|enc)\b[^\n|]{0,40}[ \t]-d)\b[^\n|]{0,100}(?:\|[^\n|]{0,100}){0,3}\|[ \t]*(?:sudo[ \t]+)?(?:(?:ba|z|da|k)?sh|python[0-9.]*|perl)\b`,
		`(?i)\b(?:eval|exec)[ \t]*\([ \t]*(?:base64\.b64decode|b64decode|atob|Buffer\.from)[ \t]*\(`,
		`(?i)\beval[ \t]+["']?\$\([ \t]*(?:echo|printf)\b[^\n)]{0,200}\|[ \t]*base64\b`,
		`(?i)\bpowershell(?:\.exe)?\b[^\n]{0,60}[ \t]-(?:e|en|enc|encodedcommand)[ \t]+[a-z0-9+/=]{20,}`,
	)

	cryptoMining = anyPattern(
		`(?i)\b(?:xmrig|xmr-stak|cpuminer|minerd|cgminer|bfgminer|ethminer|nbminer|phoenixminer|lolminer|nanominer|teamredminer)\b`,
		`(?i)\bstratum\+(?:tcp|ssl|tls)://`,
		`(?i)\b(?:nanopool\.org|minexmr\.com|supportxmr\.com|2miners\.com|f2pool\.com|ethermine\.org|nicehash\.com|moneroocean\.stream|hashvault\.pro|herominers\.com)\b`,
		`(?i)--donate-level\b`,
	)

	reverseShell = anyPattern(
		`(?i)\b(?:ba|z|k)?sh\b[^\n]{0,100}/dev/(?:tcp|udp)/[^\s/]{1,253}/\d{1,5}`,
		`(?i)\bexec[ \t]+\d{1,4}<>[ \t]*/dev/(?:tcp|udp)/`,
		`(?i)\b(?:nc|ncat|netcat)\b[^\n]{0,100}[ \t]-[a-z]*[ec][ \t]+(?:/usr)?(?:/bin/)?(?:ba|z)?sh\b`,
		`(?i)\bmkfifo\b[^\n]{0,150}\b(?:nc|ncat|netcat|telnet|openssl[ \t]+s_client)\b`,
		`(?i)\bsocat\b[^\n]{0,150}\bexec:[^\n]{0,50}\b(?:ba|z)?sh\b`,
		`(?i)socket\.socket\([^\n]{0,300}\b(?:dup2|pty\.spawn|subprocess)\b[^\n]{0,200}\b(?:ba)?sh\b`,
	)

	disableSecurity = anyPattern(
		`(?i)\bchmod[ \t]+(?:-{1,2}[a-z]+[ \t]+)?0?777\b`,
		`(?i)\bchmod[ \t]+(?:-{1,2}[a-z]+[ \t]+)?(?:a|ugo)\+rwx\b`,
		`(?i)\bsudo[ \t]+(?:-[a-z]+[ \t]+){0,3}(?:/usr)?(?:/bin/)?(?:ba|z|da|k|fi)?sh\b`,
		`(?i)\bsudo[ \t]+su\b`,
		`(?i)\bNOPASSWD[ \t]*:`,
		`(?i)\bsetenforce[ \t]+0\b`,
		`(?i)\bufw[ \t]+disable\b`,
		`(?i)\bsystemctl[ \t]+(?:stop|disable|mask)[ \t]+(?:firewalld|apparmor|auditd)\b`,
		`(?i)\bhttp\.sslverify[ \t]+false\b`,
		`(?i)\bNODE_TLS_REJECT_UNAUTHORIZED[ \t]*=[ \t]*["']?0\b`,
		`(?i)\bcurl\b[^\n]{0,200}[ \t](?:-k|--insecure)\b`,
	)

	suspiciousFileAccess = anyOf(privateKeyAccess, anyPattern(
		`(?i)\.ssh/authorized_keys\b`,
		`(?i)/etc/(?:passwd|shadow|gshadow|sudoers|master\.passwd)\b`,
		`(?i)\.aws/credentials\b`,
		`(?i)\.docker/config\.json\b`,
		`(?i)\.kube/config\b`,
		`(?i)(?:^|[\s/~"'])\.(?:netrc|git-credentials|pypirc)\b`,
		`(?i)\.gnupg/`,
		`(?i)\.config/gcloud\b`,
		`(?i)Library/Keychains\b`,
	))
)

// rmFlags is a bounded flag run that requests a forced recursive delete,
// either as one cluster (-rf, -Rf, -fr) or as separate flags in any order.
const rmFlags = `(?:-{1,2}[a-z-]+[ \t]+){0,4}(?:` +
	`-[a-z]*(?:r[a-z]*f|f[a-z]*r)[a-z]*` +
	`|(?:-[a-z]*r[a-z]*|--recursive)[ \t]+(?:-{1,2}[a-z-]+[ \t]+){0,4}(?:-[a-z]*f[a-z]*|--force)` +
	`|(?:-[a-z]*f[a-z]*|--force)[ \t]+(?:-{1,2}[a-z-]+[ \t]+){0,4}(?:-[a-z]*r[a-z]*|--recursive)` +
	`)(?:[ \t]+-{1,2}[a-z-]+){0,4}`

var sshKeyPath = regexp.MustCompile(`(?i)\.ssh/(?:id_[a-z0-9_]+|identity)(\.[a-z0-9]+)?\b`)

// privateKeyAccess matches private key paths; the .pub half of a key pair
// is public.
func privateKeyAccess(text string) bool {
	for _, m := range sshKeyPath.FindAllStringSubmatch(text, -1) {
		if !strings.EqualFold(m[1], ".pub") {
			return true
		}
	}
	return false
}

var dottedQuad = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

var urlHost = regexp.MustCompile("(?i)\\b(?:https?|ftp|wss?)://(?:[^\\s/?#@]{1,256}@)?([^\\s/:?#\"'<>()\\[\\]\\\\`]{1,253})")

// SecurityRules returns the security rule table in report order. hosts are
// glob patterns for exfiltration-friendly domains, matched with '.' as
// the separator.
func SecurityRules(hosts []string) ([]Rule, error) {
	globs := make([]glob.Glob, 0, len(hosts))
	for _, h := range hosts {
		g, err := glob.Compile(strings.ToLower(h), '.')
		if err != nil {
			return nil, fmt.Errorf("compiling host pattern %q: %w", h, err)
		}
		globs = append(globs, g)
	}

	return []Rule{
		{
			ID:       "security.shellInjection",
			Severity: domain.SeverityError,
			Message:  "Remote content is piped into a shell, or a recursive delete targets the filesystem root",
			Pass:     "No remote-to-shell execution detected",
			Match:    shellInjection,
		},
		{
			ID:       "security.envDumping",
			Severity: domain.SeverityError,
			Message:  "Environment variables are dumped and sent off the machine",
			Pass:     "No environment exfiltration detected",
			Match:    envDumping,
		},
		{
			ID:       "security.suspiciousUrls",
			Severity: domain.SeverityError,
			Message:  "URL points at a literal IP address or a known data-capture host",
			Pass:     "No suspicious URLs detected",
			Match:    hostMatcher(globs),
		},
		{
			ID:       "security.promptInjection",
			Severity: domain.SeverityError,
			Message:  "Text tries to override prior or system instructions",
			Pass:     "No prompt injection phrasing detected",
			Match:    promptInjection,
		},
		{
			ID:       "security.obfuscatedCommands",
			Severity: domain.SeverityError,
			Message:  "Encoded payload is decoded and executed",
			Pass:     "No obfuscated commands detected",
			Match:    obfuscatedCommands,
		},
		{
			ID:       "security.cryptoMining",
			Severity: domain.SeverityError,
			Message:  "References a cryptocurrency miner or mining pool",
			Pass:     "No crypto mining references detected",
			Match:    cryptoMining,
		},
		{
			ID:       "security.reverseShell",
			Severity: domain.SeverityError,
			Message:  "Contains a reverse shell one-liner",
			Pass:     "No reverse shell detected",
			Match:    reverseShell,
		},
		{
			ID:       "security.disableSecurity",
			Severity: domain.SeverityWarning,
			Message:  "Loosens permissions, escalates privileges or disables a security control",
			Pass:     "No security-weakening commands detected",
			Match:    disableSecurity,
		},
		{
			ID:       "security.suspiciousFileAccess",
			Severity: domain.SeverityWarning,
			Message:  "Reads credential stores, private keys or system account files",
			Pass:     "No sensitive file access detected",
			Match:    suspiciousFileAccess,
		},
	}, nil
}

// RuleIDs lists the security rule ids in report order.
func RuleIDs() []string {
	rules, _ := SecurityRules(nil)
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}

func hostMatcher(globs []glob.Glob) func(string) bool {
	return func(text string) bool {
		for _, m := range urlHost.FindAllStringSubmatch(text, -1) {
			host := strings.TrimSuffix(strings.ToLower(m[1]), ".")
			if suspiciousHost(host, globs) {
				return true
			}
		}
		for _, ip := range bareIPv4s(text) {
			if suspiciousHost(ip, nil) {
				return true
			}
		}
		return false
	}
}

// bareIPv4s returns dotted quads outside URLs, such as nc or curl targets.
// Runs of more than four numeric parts are version strings, not addresses.
func bareIPv4s(text string) []string {
	var out []string
	for _, loc := range dottedQuad.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && text[start-1] == '.' {
			continue
		}
		if end+1 < len(text) && text[end] == '.' && isDigit(text[end+1]) {
			continue
		}
		out = append(out, text[start:end])
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func suspiciousHost(host string, globs []glob.Glob) bool {
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Is4() && !addr.IsLoopback() && !addr.IsUnspecified()
	}
	for _, g := range globs {
		if g.Match(host) {
			return true
		}
	}
	return false
}
