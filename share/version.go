package chshare

// BuildVersion represents a current build version. It can be overridden by CI workflow.
var BuildVersion = SourceVersion
var SourceVersion = "0.0.0-src"

// AppName is used in log prefixes, the config file name and the status route.
const AppName = "sysdash"
