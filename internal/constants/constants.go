package constants

const VERSION = "0.1.0"

const USER_AGENT = "gymstatus/" + VERSION + " (+https://github.com/upliftapp/gymstatus)"
