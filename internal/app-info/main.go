package app_info

// NAME name of app
const NAME string = "udpscout"

// VERSION current version of app
const VERSION string = "v0.1.0"
