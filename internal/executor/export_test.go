package executor

var LimitBody = limitBody
