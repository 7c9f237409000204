package cmd

import "time"

const (
	DEF_OUTPUT  = "cookies_export.csv"
	DEF_TIMEOUT = time.Second * 30
)

const DESCRIPTION = `
Cookex recovers cookies straight from the browser stores on
your machine. It discovers every installed Chromium-family
browser plus Safari and Firefox, decrypts the protected
values with the platform key store and writes everything
into a single CSV file.
`

const (
	ExportDescription = `The export command discovers every supported browser on
this machine, reads each cookie store through a private
snapshot, decrypts protected values and writes all
recovered cookies into one CSV file.

A browser that cannot be read (locked store, missing
permission, no key) is skipped with a warning; the export
succeeds with whatever the remaining browsers yield.

Example:
        cookex export
					OR
        cookex export -o ~/Desktop/cookies.csv -b Chrome

`
	BrowsersDescription = `The browsers command lists the browser cookie stores
discovered on this machine without reading any cookies.

Example:
        cookex browsers

`
)
